package dto

type TagDto struct {
	// TagId is nil when the client sent no id; 0 asks for a new tag.
	TagId *uint     `json:"tag_id" validate:"required"`
	Name  string    `json:"name" validate:"required"`
	Slug  string    `json:"slug"`
	Notes []NoteDto `json:"notes,omitempty"`
}

type SaveTagRequest struct {
	Tag *TagDto `json:"tag" validate:"required"`
}

type SaveTagResponse struct {
	TagId uint `json:"tag_id"`
}

type RemoveTagRequest struct {
	TagId uint `json:"tag_id" validate:"required"`
}

type GetTagByIdRequest struct {
	TagId uint `json:"tag_id" validate:"required"`
}

type GetTagBySlugRequest struct {
	Slug string `json:"slug" validate:"required"`
}

type GetTagResponse struct {
	Tag TagDto `json:"tag"`
}

type ListTagsResponse struct {
	Tags []TagDto `json:"tags"`
}
