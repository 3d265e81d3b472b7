package store

// Book is a single marketplace listing. Title doubles as the lookup key
// for every title-keyed operation; ID is generated on append and only
// exists to disambiguate records in the stored JSON.
//
// The JSON field names match the historical stored format, so an existing
// database written by earlier versions of the app decodes unchanged.
type Book struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"bookTitle"`
	Author      string `json:"author"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Year        string `json:"year"`
	Publisher   string `json:"publisher"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	// Location only appears in records written by older versions, which
	// stored a single combined string. New listings keep city and postal
	// code separate and leave it empty.
	Location string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURI    string `json:"imageUri,omitempty"`
}

// Profile is the seller's contact card. Exactly one profile exists; saving
// overwrites the whole record.
type Profile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Credential is the single stored account. Password holds a bcrypt hash,
// never the plaintext.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
