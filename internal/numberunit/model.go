package numberunit

// Pair is one extractor with the parser for its results.
type Pair struct {
	Extractor Extractor
	Parser    Parser
}

// ModelResult is the public shape of a recognized quantity. End is inclusive.
type ModelResult struct {
	Start      int        `json:"start"`
	End        int        `json:"end"`
	Text       string     `json:"text"`
	TypeName   string     `json:"typeName"`
	Resolution Resolution `json:"resolution"`
}

// Resolution is {value, unit} or {value, unit, isoCurrency}; a bare {value}
// when the result carries no unit.
type Resolution struct {
	Value       string `json:"value"`
	Unit        string `json:"unit,omitempty"`
	ISOCurrency string `json:"isoCurrency,omitempty"`
}

// Model runs its pairs over text and merges their results. The first pair to
// report a given (start, end) wins, so a locale can register its own pair
// before an English fallback.
type Model struct {
	typeName string
	pairs    []Pair
}

func NewModel(typeName string, pairs ...Pair) *Model {
	return &Model{typeName: typeName, pairs: pairs}
}

// TypeName is the model name reported on each result ("currency", "age"...).
func (m *Model) TypeName() string { return m.typeName }

// Parse recognizes quantities in text. It never fails; no match yields nil.
func (m *Model) Parse(text string) []ModelResult {
	if text == "" {
		return nil
	}
	orig := []rune(text)
	text = Preprocess(text)
	type span struct{ start, end int }
	seen := map[span]bool{}
	var out []ModelResult
	for _, p := range m.pairs {
		for _, er := range p.Extractor.Extract(text) {
			pr := p.Parser.Parse(er)
			parts := pr.Parts
			if len(parts) == 0 {
				parts = []ParseResult{pr}
			}
			for _, r := range parts {
				if r.Value == nil {
					continue
				}
				s := span{r.Start, r.End() - 1}
				if seen[s] {
					continue
				}
				seen[s] = true
				out = append(out, ModelResult{
					Start:    s.start,
					End:      s.end,
					Text:     string(orig[s.start : s.end+1]),
					TypeName: m.typeName,
					Resolution: Resolution{
						Value:       r.Value.Number,
						Unit:        r.Value.Unit,
						ISOCurrency: r.Value.ISOCurrency,
					},
				})
			}
		}
	}
	return out
}
