package entity

// Lead is a prospective recipient taken from one CSV row.
type Lead struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Product string `json:"product,omitempty"`
}

func (l Lead) HasProduct() bool {
	return l.Product != ""
}
