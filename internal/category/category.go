package category

import "strings"

// Category is one entry of the label set offered when recording an expense.
type Category struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (c Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		Name:  c.Name,
		Image: c.Image,
	}
}

// normalize is only used for image lookup. Aggregation keys stay exact.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
