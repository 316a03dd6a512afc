package film

// Film is a read-only record from the Sakila catalog.
type Film struct {
	ID          int
	Title       string
	ReleaseYear int
	Description string
	Rating      Rating
	Length      int
}

// Rating is an MPAA content rating code as stored in the catalog (e.g. "PG-13").
type Rating string

// ageLabels maps MPAA codes to the age labels shown to users. Codes outside
// the map render as "Unknown".
var ageLabels = map[Rating]string{
	"G":     "0+",
	"PG":    "6+",
	"PG-13": "12+",
	"R":     "16+",
	"NC-17": "18+",
}

func (x Rating) AgeLabel() string {
	if label, ok := ageLabels[x]; ok {
		return label
	}
	return "Unknown"
}
