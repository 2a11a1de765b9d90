package domain

// Artifact table names as produced by the external indexing engine.
const (
	TableNodes            = "create_final_nodes"
	TableCommunityReports = "create_final_community_reports"
	TableTextUnits        = "create_final_text_units"
	TableRelationships    = "create_final_relationships"
	TableEntities         = "create_final_entities"
	TableCommunities      = "create_final_communities"
	TableCovariates       = "create_final_covariates"
)

// RequiredArtifacts lists the tables that must all be present for a project
// to be queryable. Covariates are optional.
func RequiredArtifacts() []string {
	return []string{
		TableNodes,
		TableCommunityReports,
		TableTextUnits,
		TableRelationships,
		TableEntities,
		TableCommunities,
	}
}

// Node is one row of the final nodes table: an entity placed in the
// community hierarchy.
type Node struct {
	ID        string `parquet:"id"`
	Title     string `parquet:"title"`
	Community int32  `parquet:"community"`
	Level     int32  `parquet:"level"`
	Degree    int32  `parquet:"degree"`
}

// Entity is one row of the final entities table.
type Entity struct {
	ID                   string    `parquet:"id"`
	Title                string    `parquet:"title"`
	Type                 string    `parquet:"type,optional"`
	Description          string    `parquet:"description,optional"`
	TextUnitIDs          []string  `parquet:"text_unit_ids,list"`
	DescriptionEmbedding []float32 `parquet:"description_embedding,list,optional"`
}

// Relationship is one row of the final relationships table.
type Relationship struct {
	ID          string  `parquet:"id"`
	Source      string  `parquet:"source"`
	Target      string  `parquet:"target"`
	Description string  `parquet:"description,optional"`
	Weight      float64 `parquet:"weight,optional"`
	Degree      int32   `parquet:"combined_degree,optional"`
}

// Community is one row of the final communities table.
type Community struct {
	ID        string   `parquet:"id"`
	Title     string   `parquet:"title"`
	Level     int32    `parquet:"level"`
	EntityIDs []string `parquet:"entity_ids,list"`
}

// CommunityReport is one row of the final community reports table.
type CommunityReport struct {
	ID                   string    `parquet:"id"`
	Community            string    `parquet:"community"`
	Level                int32     `parquet:"level"`
	Title                string    `parquet:"title"`
	Summary              string    `parquet:"summary,optional"`
	FullContent          string    `parquet:"full_content,optional"`
	Rank                 float64   `parquet:"rank,optional"`
	FullContentEmbedding []float32 `parquet:"full_content_embedding,list,optional"`
}

// TextUnit is one row of the final text units table: a chunk of ingested
// document text used as a retrieval granule.
type TextUnit struct {
	ID          string    `parquet:"id"`
	Text        string    `parquet:"text"`
	DocumentIDs []string  `parquet:"document_ids,list"`
	EntityIDs   []string  `parquet:"entity_ids,list,optional"`
	Embedding   []float32 `parquet:"text_embedding,list,optional"`
}

// Covariate is one row of the optional covariates (claims) table.
type Covariate struct {
	ID          string `parquet:"id"`
	SubjectID   string `parquet:"subject_id"`
	Type        string `parquet:"type,optional"`
	Status      string `parquet:"status,optional"`
	Description string `parquet:"description,optional"`
}

// Tables holds every artifact table loaded for one query execution.
// A nil Covariates slice means the optional table is absent, which is not an
// error.
type Tables struct {
	Nodes            []Node
	Entities         []Entity
	Relationships    []Relationship
	Communities      []Community
	CommunityReports []CommunityReport
	TextUnits        []TextUnit
	Covariates       []Covariate
}

// HasCovariates reports whether the optional claims table was present.
func (t *Tables) HasCovariates() bool { return t.Covariates != nil }
