package domain

// Settings is the flat site-settings document the admin panel edits. Field
// names are part of the admin UI contract.
type Settings struct {
	HeroTitle           string   `json:"heroTitle"`
	HeroSubtitle        string   `json:"heroSubtitle"`
	PrimaryButtonText   string   `json:"primaryButtonText"`
	SecondaryButtonText string   `json:"secondaryButtonText"`
	Features            []string `json:"features"`
	FeatureDescriptions []string `json:"featureDescriptions"`
	ButtonPadding       string   `json:"buttonPadding"`
	ButtonMargin        string   `json:"buttonMargin"`
	SectionPadding      string   `json:"sectionPadding"`
	ContainerMaxWidth   string   `json:"containerMaxWidth"`
	PrimaryColor        string   `json:"primaryColor"`
	SecondaryColor      string   `json:"secondaryColor"`
	TextColor           string   `json:"textColor"`
	BackgroundColor     string   `json:"backgroundColor"`
	HeroImage           string   `json:"heroImage"`
}

// DefaultSettings is served (and written) when no settings document exists.
func DefaultSettings() Settings {
	return Settings{
		HeroTitle:           "Build Discipline, Confidence, and Fitness with Excellent Taekwondo",
		HeroSubtitle:        "All ages and skill levels welcome. Join our supportive community and start your journey today.",
		PrimaryButtonText:   "Book a Free Trial",
		SecondaryButtonText: "View Programs",
		Features:            []string{"Discipline", "Confidence", "Fitness"},
		FeatureDescriptions: []string{
			"Practical skills and character development through structured training.",
			"Build self-assurance and mental strength.",
			"Improve physical conditioning and flexibility.",
		},
		ButtonPadding:     "px-6 py-3",
		ButtonMargin:      "mt-8",
		SectionPadding:    "py-16",
		ContainerMaxWidth: "max-w-7xl",
		PrimaryColor:      "#2563eb",
		SecondaryColor:    "#1e40af",
		TextColor:         "#1f2937",
		BackgroundColor:   "#ffffff",
		HeroImage:         "/images/et1.jpg",
	}
}

// HeroSection is the hero block of the themed CMS settings.
type HeroSection struct {
	Title               string `json:"title"`
	Subtitle            string `json:"subtitle"`
	PrimaryButtonText   string `json:"primaryButtonText"`
	SecondaryButtonText string `json:"secondaryButtonText"`
	PrimaryButtonLink   string `json:"primaryButtonLink"`
	SecondaryButtonLink string `json:"secondaryButtonLink"`
	BackgroundImage     string `json:"backgroundImage"`
	ImageScale          string `json:"imageScale"`
	ImageOpacity        string `json:"imageOpacity"`
}

// ColorPalette is the site color scheme.
type ColorPalette struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Accent        string `json:"accent"`
	Dark          string `json:"dark"`
	Surface       string `json:"surface"`
	Background    string `json:"background"`
	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
}

// FeaturesSection is the "why choose us" block.
type FeaturesSection struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	ShowSection bool   `json:"showSection"`
}

// ProgramsSection is the programs listing block with its call to action.
type ProgramsSection struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	CTATitle    string `json:"ctaTitle"`
	CTASubtitle string `json:"ctaSubtitle"`
	ShowSection bool   `json:"showSection"`
}

// ContactSection is the contact block.
type ContactSection struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
}

// CMSSettings is the themed, sectioned settings document consumed by the
// public pages.
type CMSSettings struct {
	Hero     HeroSection     `json:"hero"`
	Colors   ColorPalette    `json:"colors"`
	Features FeaturesSection `json:"features"`
	Programs ProgramsSection `json:"programs"`
	Contact  ContactSection  `json:"contact"`
}

// DefaultCMSSettings is served when no CMS settings document exists.
func DefaultCMSSettings() CMSSettings {
	return CMSSettings{
		Hero: HeroSection{
			Title:               "Build Discipline, Confidence, and Fitness with Excellent Taekwondo",
			Subtitle:            "All ages and skill levels welcome. Join our supportive community and start your journey today.",
			PrimaryButtonText:   "Book a Free Trial",
			SecondaryButtonText: "View Programs",
			PrimaryButtonLink:   "/contact",
			SecondaryButtonLink: "/programs",
			BackgroundImage:     "/images/et1.jpg",
			ImageScale:          "0.85",
			ImageOpacity:        "opacity-70",
		},
		Colors: ColorPalette{
			Primary:       "#D72638",
			Secondary:     "#FFD700",
			Accent:        "#FFD700",
			Dark:          "#0D1B2A",
			Surface:       "#2F3E46",
			Background:    "#FFFFFF",
			TextPrimary:   "#0D1B2A",
			TextSecondary: "#2F3E46",
		},
		Features: FeaturesSection{
			Title:       "Why Choose Excellent Taekwondo?",
			Subtitle:    "Transform your life through martial arts with our comprehensive approach to physical and mental development.",
			ShowSection: true,
		},
		Programs: ProgramsSection{
			Title:       "Our Programs",
			Subtitle:    "Choose the perfect class for your age and skill level",
			CTATitle:    "Ready to Start Your Journey?",
			CTASubtitle: "Join thousands of students who have transformed their lives through martial arts. Book your free trial class today!",
			ShowSection: true,
		},
		Contact: ContactSection{
			Title:    "Contact Us",
			Subtitle: "Have questions or want to book a free trial? Send us a message and we'll get back to you shortly.",
			Address:  "123 Dojang Street, Your City",
			Phone:    "+1 (000) 000-0000",
			Email:    "info@example.com",
			WhatsApp: "+10000000000",
		},
	}
}
