package dto

type CreateGuidelineRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description,omitempty"`
	Guidelines  string `json:"guidelines" validate:"required"`
	Version     string `json:"version,omitempty"`
	Active      bool   `json:"active,omitempty"`
}

type UpdateGuidelineRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	Guidelines  *string `json:"guidelines,omitempty"`
	Version     *string `json:"version,omitempty"`
}
