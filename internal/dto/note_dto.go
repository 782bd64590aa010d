package dto

type NoteDto struct {
	NoteId  uint     `json:"note_id"`
	Title   string   `json:"title" validate:"required"`
	Body    string   `json:"body"`
	Slug    string   `json:"slug"`
	Version int      `json:"version" validate:"gte=0"`
	Tags    []TagDto `json:"tags"`
}

type SaveNoteRequest struct {
	Note *NoteDto `json:"note" validate:"required"`
}

type SaveNoteResponse struct {
	NoteId uint `json:"note_id"`
}

type RemoveNoteRequest struct {
	NoteId uint `json:"note_id" validate:"required"`
}

type GetNoteByIdRequest struct {
	NoteId uint `json:"note_id" validate:"required"`
}

type GetNoteBySlugRequest struct {
	Slug string `json:"slug" validate:"required"`
}

type GetNoteResponse struct {
	Note NoteDto `json:"note"`
}

type ListNotesResponse struct {
	Notes []NoteDto `json:"notes"`
}
