package resumes

// Business caps on repeated sections.
const (
	MaxEmployment = 3
	MaxReferences = 3
)

// Record is the fixed resume schema returned to the form. Every leaf is a
// nullable string; unset values marshal as null.
type Record struct {
	Contact    Contact      `json:"contact"`
	TargetRole *string      `json:"targetRole"`
	Employment []Employment `json:"employment"`
	Education  Education    `json:"education"`
	Skills     Skills       `json:"skills"`
	References []Reference  `json:"references"`
}

type Contact struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Cell     *string `json:"cell"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Zip      *string `json:"zip"`
	Location *string `json:"location"`
}

type Employment struct {
	Company          *string `json:"company"`
	Address          *string `json:"address"`
	Phone            *string `json:"phone"`
	Position         *string `json:"position"`
	DateFrom         *string `json:"dateFrom"`
	DateTo           *string `json:"dateTo"`
	Duties           *string `json:"duties"`
	ReasonForLeaving *string `json:"reasonForLeaving"`
	Supervisor       *string `json:"supervisor"`
}

type Education struct {
	Graduate      *string `json:"graduate"`
	GraduateYears *string `json:"graduateYears"`
	GraduateMajor *string `json:"graduateMajor"`
	Trade         *string `json:"trade"`
	TradeYears    *string `json:"tradeYears"`
	TradeMajor    *string `json:"tradeMajor"`
	High          *string `json:"high"`
	HighYears     *string `json:"highYears"`
	HighMajor     *string `json:"highMajor"`
}

type Skills struct {
	TypingSpeed    *string `json:"typingSpeed"`
	TenKey         *string `json:"tenKey"`
	TenKeyMode     *string `json:"tenKeyMode"`
	ComputerSkills *string `json:"computerSkills"`
	DriverLicense  *string `json:"driverLicense"`
}

type Reference struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Phone   *string `json:"phone"`
}

// Empty returns the canonical record with every field unset.
func Empty() Record {
	return Normalize(nil)
}
