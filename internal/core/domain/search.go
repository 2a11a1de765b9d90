package domain

// SearchMode selects the retrieval strategy.
type SearchMode string

const (
	SearchModeLocal  SearchMode = "local"  // entity-centric graph neighbourhood
	SearchModeGlobal SearchMode = "global" // community report map/reduce
	SearchModeDrift  SearchMode = "drift"  // iterative local+global refinement
	SearchModeBasic  SearchMode = "basic"  // plain vector search over text units
)

// ParseSearchMode maps a mode identifier to a SearchMode. Unrecognized
// identifiers fall back to basic search.
func ParseSearchMode(s string) SearchMode {
	switch SearchMode(s) {
	case SearchModeLocal, SearchModeGlobal, SearchModeDrift:
		return SearchMode(s)
	default:
		return SearchModeBasic
	}
}

// AllSearchModes lists the supported modes in a stable order.
func AllSearchModes() []SearchMode {
	return []SearchMode{SearchModeLocal, SearchModeGlobal, SearchModeDrift, SearchModeBasic}
}

// Turn is one role/content pair of a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Row is one record of a context data category.
type Row map[string]string

// ContextData is the retrieval evidence returned alongside an answer.
// Every category is always present as a (possibly empty) sequence so
// downstream consumers can treat the shape uniformly across modes.
type ContextData struct {
	Reports       []Row `json:"reports"`
	Entities      []Row `json:"entities"`
	Relationships []Row `json:"relationships"`
	Claims        []Row `json:"claims"`
	Sources       []Row `json:"sources"`
}

// Normalize replaces nil categories with empty sequences.
func (c *ContextData) Normalize() {
	if c.Reports == nil {
		c.Reports = []Row{}
	}
	if c.Entities == nil {
		c.Entities = []Row{}
	}
	if c.Relationships == nil {
		c.Relationships = []Row{}
	}
	if c.Claims == nil {
		c.Claims = []Row{}
	}
	if c.Sources == nil {
		c.Sources = []Row{}
	}
}

// SearchResult is the normalized outcome of one query execution, regardless
// of which mode produced it.
type SearchResult struct {
	Answer       string      `json:"answer"`
	Context      ContextData `json:"context_data"`
	PromptTokens int         `json:"prompt_tokens"`
}

// SearchRequest is the legacy simple-search request shape.
type SearchRequest struct {
	Query                     string     `json:"query"`
	ProjectName               string     `json:"project_name"`
	Mode                      SearchMode `json:"-"`
	CommunityLevel            int        `json:"community_level"`
	DynamicCommunitySelection bool       `json:"dynamic_community_selection"`
	QuerySource               bool       `json:"query_source"`
	UserCache                 bool       `json:"user_cache"`
	ContextData               bool       `json:"context_data"`
}

// SearchEnvelope is the legacy simple-search response shape.
type SearchEnvelope struct {
	Message  string         `json:"message"`
	Response string         `json:"response"`
	Query    string         `json:"query"`
	Sources  []SourceRecord `json:"sources,omitempty"`
	Context  *ContextData   `json:"context_data,omitempty"`
}
