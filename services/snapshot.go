package services

import (
	"encoding/json"

	"formu.link/models"
)

// FieldSnapshot taslak ve sürüm payload'larında saklanan alan görüntüsü.
// JSON etiketleri API ile aynı sözleşmeyi kullanır.
type FieldSnapshot struct {
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

// FormSnapshot bir formun sürüm/taslak payload'ında saklanan tam görüntüsü.
type FormSnapshot struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	CategoryID  *uint           `json:"categoryId,omitempty"`
	Fields      []FieldSnapshot `json:"fields"`
}

// SnapshotFields model alanlarını payload görüntüsüne çevirir (Position sırası korunur).
func SnapshotFields(fields []models.FormField) []FieldSnapshot {
	out := make([]FieldSnapshot, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldSnapshot{
			ID:          f.FieldID,
			Type:        f.Type,
			Label:       f.Label,
			Name:        f.Name,
			Options:     f.Options,
			Placeholder: f.Placeholder,
			Value:       f.Value,
			Required:    f.Required,
			DoNotStore:  f.DoNotStore,
		})
	}
	return out
}

// FieldsFromSnapshot payload görüntüsünü model alanlarına geri çevirir.
// Position değerleri liste sırasından yazılır.
func FieldsFromSnapshot(snapshot []FieldSnapshot) []models.FormField {
	out := make([]models.FormField, 0, len(snapshot))
	for i, f := range snapshot {
		out = append(out, models.FormField{
			FieldID:     f.ID,
			Type:        f.Type,
			Label:       f.Label,
			Name:        f.Name,
			Options:     f.Options,
			Placeholder: f.Placeholder,
			Value:       f.Value,
			Required:    f.Required,
			DoNotStore:  f.DoNotStore,
			Position:    i,
		})
	}
	return out
}

// EncodeFormSnapshot görüntüyü payload metnine serileştirir.
func EncodeFormSnapshot(snapshot FormSnapshot) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeFormSnapshot payload metnini görüntüye çözer.
func DecodeFormSnapshot(payload string) (FormSnapshot, error) {
	var snapshot FormSnapshot
	err := json.Unmarshal([]byte(payload), &snapshot)
	return snapshot, err
}
