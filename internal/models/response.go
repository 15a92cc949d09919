package models

type AnalyzeResponse struct {
	Description string `json:"description"`
	Format      string `json:"format"`
	SizeKB      int    `json:"size_kb"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

type AppListResponse struct {
	Apps []App `json:"apps"`
}

type DeleteAppResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
