package models

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

type Category string

const (
	CategoryPlumbing   Category = "plumbing"
	CategoryElectrical Category = "electrical"
	CategoryHVAC       Category = "hvac"
	CategoryRoofing    Category = "roofing"
	CategoryGeneral    Category = "general"
	CategoryLocksmith  Category = "locksmith"
)

// Input message. Both image variants seen on the wire are accepted; use
// Image() to get the one that applies.
type DiagnosisRequest struct {
	Description    string `json:"description" description:"Free-text description of the repair problem"`
	ImageBase64    string `json:"image_base64,omitempty" description:"Base64 encoded photo of the problem"`
	ImageMediaType string `json:"image_media_type,omitempty" description:"Media type of image_base64, e.g. image/jpeg"`
	ImageURL       string `json:"image_url,omitempty" description:"Public URL of a photo of the problem"`
}

// Returned to the caller
type DiagnosisResult struct {
	Title         string     `json:"title"`
	Difficulty    Difficulty `json:"difficulty"`
	EstimatedTime string     `json:"estimated_time"`
	Tools         []string   `json:"tools"`
	Steps         []string   `json:"steps"`
	Category      Category   `json:"category,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
