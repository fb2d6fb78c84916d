package fieldkit

// FieldType desteklenen form alanı tiplerini tanımlar.
type FieldType string

const (
	TypeText           FieldType = "text"
	TypeTextarea       FieldType = "textarea"
	TypeEmail          FieldType = "email"
	TypeNumber         FieldType = "number"
	TypePhone          FieldType = "phone"
	TypeDate           FieldType = "date"
	TypeTime           FieldType = "time"
	TypeDropdown       FieldType = "dropdown"
	TypeMultipleChoice FieldType = "multiple-choice"
	TypeCheckboxes     FieldType = "checkboxes"
	TypeFile           FieldType = "file"
	TypeRichText       FieldType = "rich-text"
	TypeSectionHeading FieldType = "section-heading"
)

// AllFieldTypes builder arayüzünde sunulan tiplerin sıralı listesi.
var AllFieldTypes = []FieldType{
	TypeText, TypeTextarea, TypeEmail, TypeNumber, TypePhone,
	TypeDate, TypeTime, TypeDropdown, TypeMultipleChoice, TypeCheckboxes,
	TypeFile, TypeRichText, TypeSectionHeading,
}

// DefaultOptions seçenekli tipler için başlangıç seçenek listesi.
const DefaultOptions = "Option 1, Option 2"

// FieldDefaults bir alan tipinin varsayılan özelliklerini taşır.
type FieldDefaults struct {
	Label       string
	Placeholder string
	Options     string
}

// HasOptions tipin seçenek listesi taşıyıp taşımadığını döndürür.
func HasOptions(t FieldType) bool {
	switch t {
	case TypeDropdown, TypeMultipleChoice, TypeCheckboxes:
		return true
	default:
		return false
	}
}

// DefaultsFor bir alan tipi için varsayılan etiket, placeholder ve seçenekleri
// döndürür. Toplam fonksiyondur: bilinmeyen tipler ham tip metniyle döner.
func DefaultsFor(t FieldType) FieldDefaults {
	switch t {
	case TypeText:
		return FieldDefaults{Label: "Text Field", Placeholder: "Enter text"}
	case TypeTextarea:
		return FieldDefaults{Label: "Long Text", Placeholder: "Enter your answer"}
	case TypeEmail:
		return FieldDefaults{Label: "Email", Placeholder: "name@example.com"}
	case TypeNumber:
		return FieldDefaults{Label: "Number", Placeholder: "0"}
	case TypePhone:
		return FieldDefaults{Label: "Phone", Placeholder: "+90 5xx xxx xx xx"}
	case TypeDate:
		return FieldDefaults{Label: "Date", Placeholder: "YYYY-MM-DD"}
	case TypeTime:
		return FieldDefaults{Label: "Time", Placeholder: "HH:MM"}
	case TypeDropdown:
		return FieldDefaults{Label: "Dropdown", Placeholder: "Select an option", Options: DefaultOptions}
	case TypeMultipleChoice:
		return FieldDefaults{Label: "Multiple Choice", Placeholder: "Select one", Options: DefaultOptions}
	case TypeCheckboxes:
		// Checkbox grubunda placeholder anlamsızdır.
		return FieldDefaults{Label: "Checkboxes", Options: DefaultOptions}
	case TypeFile:
		return FieldDefaults{Label: "File Upload", Placeholder: "Choose a file"}
	case TypeRichText:
		return FieldDefaults{Label: "Rich Text"}
	case TypeSectionHeading:
		return FieldDefaults{Label: "Section Heading"}
	default:
		return FieldDefaults{Label: string(t)}
	}
}
