package normalisers

// TextNormaliser passes plain text files through unchanged.
type TextNormaliser struct{}

func (n *TextNormaliser) SupportedExtensions() []string { return []string{".txt"} }
func (n *TextNormaliser) Priority() int                 { return 0 }

func (n *TextNormaliser) Normalise(name string, content []byte) (string, []byte, error) {
	return name, content, nil
}

// MarkdownNormaliser keeps markdown verbatim but renames it so the indexing
// engine, which only scans *.txt, picks it up.
type MarkdownNormaliser struct{}

func (n *MarkdownNormaliser) SupportedExtensions() []string { return []string{".md"} }
func (n *MarkdownNormaliser) Priority() int                 { return 0 }

func (n *MarkdownNormaliser) Normalise(name string, content []byte) (string, []byte, error) {
	return name + ".txt", content, nil
}
