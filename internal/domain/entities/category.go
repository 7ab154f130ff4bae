package entities

// CategoryTag is the subject tag of a category.
type CategoryTag string

const (
	CategoryIT       CategoryTag = "IT"
	CategoryEconomy  CategoryTag = "ECONOMY"
	CategoryHistory  CategoryTag = "HISTORY"
	CategoryLanguage CategoryTag = "LANGUAGE"
	CategoryMath     CategoryTag = "MATH"
	CategoryArt      CategoryTag = "ART"
	CategoryMedicine CategoryTag = "MEDICINE"
	CategoryEtc      CategoryTag = "ETC"
)

// Category groups documents of one subject.
type Category struct {
	ID        int64
	Name      string
	Tag       CategoryTag
	Order     int
	Emoji     string
	Documents []DocumentRef
}

// DocumentRef is a document listed under a category.
type DocumentRef struct {
	ID    int64
	Name  string
	Order int
}
