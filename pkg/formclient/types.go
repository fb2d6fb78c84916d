package formclient

import "time"

// FieldPayload API üzerinden taşınan tek bir form alanı.
// ID alan oluşturulurken bir kez üretilir ve sıralamadan bağımsız sabittir.
type FieldPayload struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Label       string `json:"label"`
	Name        string `json:"name"`
	Options     string `json:"options,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Value       string `json:"value,omitempty"`
	Required    bool   `json:"required"`
	DoNotStore  bool   `json:"doNotStore"`
}

// FormPayload form oluşturma/güncelleme isteğinin gövdesi.
// ID nil ise yeni form oluşturulur.
type FormPayload struct {
	ID          *uint          `json:"id,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Fields      []FieldPayload `json:"fields"`
	CategoryID  *uint          `json:"categoryId,omitempty"`
}

// DraftPayload taslak kaydetme isteğinin gövdesi.
type DraftPayload struct {
	FormID     *uint          `json:"formId"`
	Title      string         `json:"title"`
	Fields     []FieldPayload `json:"fields"`
	CategoryID *uint          `json:"categoryId,omitempty"`
	IsAutoSave bool           `json:"isAutoSave"`
}

// Form API'den dönen form kaydı.
type Form struct {
	ID         uint           `json:"id"`
	Key        string         `json:"key"`
	Title      string         `json:"title"`
	Status     string         `json:"status"`
	CategoryID *uint          `json:"categoryId,omitempty"`
	Fields     []FieldPayload `json:"fields"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// Draft API'den dönen taslak kaydı.
type Draft struct {
	ID         uint      `json:"id"`
	FormID     *uint     `json:"formId"`
	Title      string    `json:"title"`
	IsAutoSave bool      `json:"isAutoSave"`
	SavedAt    time.Time `json:"savedAt"`
}

// Version API'den dönen sürüm kaydı.
type Version struct {
	ID                uint       `json:"id"`
	FormID            uint       `json:"formId"`
	VersionNumber     int        `json:"versionNumber"`
	ChangeDescription string     `json:"changeDescription"`
	IsPublished       bool       `json:"isPublished"`
	PublishedAt       *time.Time `json:"publishedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}
