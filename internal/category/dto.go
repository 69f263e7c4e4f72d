package category

type CategoryResponse struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
