package domain

// Entity is implemented by content types stored in flat JSON collections.
type Entity interface {
	EntityID() int64
	SetEntityID(id int64)
}

// Program is one class offering shown on the programs page.
type Program struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	AgeRange string   `json:"ageRange"`
	Level    string   `json:"level"`
	Blurb    string   `json:"blurb"`
	Days     []string `json:"days"`
	Time     string   `json:"time"`
}

func (p *Program) EntityID() int64      { return p.ID }
func (p *Program) SetEntityID(id int64) { p.ID = id }

// Instructor is one staff profile.
type Instructor struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Role  string   `json:"role"`
	Bio   string   `json:"bio"`
	Belts []string `json:"belts"`
	Photo string   `json:"photo"`
}

func (i *Instructor) EntityID() int64      { return i.ID }
func (i *Instructor) SetEntityID(id int64) { i.ID = id }

// Testimonial is one student quote.
type Testimonial struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Quote string `json:"quote"`
}

func (t *Testimonial) EntityID() int64      { return t.ID }
func (t *Testimonial) SetEntityID(id int64) { t.ID = id }
