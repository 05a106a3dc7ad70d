package seo

// Config describes the head metadata of a single page. Every field is
// optional; a zero value means "do not emit". Booleans and integers whose
// zero value is meaningful are pointers so that an explicit false or 0 can
// be told apart from an unset field.
type Config struct {
	Title         string `yaml:"title"`
	TitleTemplate string `yaml:"titleTemplate"`
	Description   string `yaml:"description"`

	NoIndex  *bool        `yaml:"noindex"`
	NoFollow *bool        `yaml:"nofollow"`
	Robots   *RobotsProps `yaml:"robotsProps"`

	Canonical          string              `yaml:"canonical"`
	MobileAlternate    *MobileAlternate    `yaml:"mobileAlternate"`
	LanguageAlternates []LanguageAlternate `yaml:"languageAlternates"`

	OpenGraph *OpenGraph `yaml:"openGraph"`
	Facebook  *Facebook  `yaml:"facebook"`
	Twitter   *Twitter   `yaml:"twitter"`

	AdditionalMetaTags []MetaTag `yaml:"additionalMetaTags"`
	AdditionalLinkTags []LinkTag `yaml:"additionalLinkTags"`
}

type RobotsProps struct {
	NoSnippet        bool   `yaml:"nosnippet"`
	MaxSnippet       *int   `yaml:"maxSnippet"`
	MaxImagePreview  string `yaml:"maxImagePreview"`
	NoArchive        bool   `yaml:"noarchive"`
	UnavailableAfter string `yaml:"unavailableAfter"`
	NoImageIndex     bool   `yaml:"noimageindex"`
	NoTranslate      bool   `yaml:"notranslate"`
}

// Values accepted by crawlers for RobotsProps.MaxImagePreview.
const (
	ImagePreviewNone     = "none"
	ImagePreviewStandard = "standard"
	ImagePreviewLarge    = "large"
)

type MobileAlternate struct {
	Media string `yaml:"media"`
	Href  string `yaml:"href"`
}

type LanguageAlternate struct {
	HrefLang string `yaml:"hreflang"`
	Href     string `yaml:"href"`
}

type OpenGraph struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	Type        string `yaml:"type"`
	Locale      string `yaml:"locale"`
	SiteName    string `yaml:"site_name"`

	Images []Media `yaml:"images"`
	Videos []Media `yaml:"videos"`

	Profile *Profile `yaml:"profile"`
	Book    *Book    `yaml:"book"`
	Article *Article `yaml:"article"`
	Video   *Video   `yaml:"video"`
}

// Media is an OpenGraph image or video reference.
type Media struct {
	URL       string `yaml:"url"`
	Alt       string `yaml:"alt"`
	SecureURL string `yaml:"secureUrl"`
	Type      string `yaml:"type"`
	Width     *int   `yaml:"width"`
	Height    *int   `yaml:"height"`
}

type Profile struct {
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Username  string `yaml:"username"`
	Gender    string `yaml:"gender"`
}

type Book struct {
	Authors     []string `yaml:"authors"`
	ISBN        string   `yaml:"isbn"`
	ReleaseDate string   `yaml:"releaseDate"`
	Tags        []string `yaml:"tags"`
}

type Article struct {
	PublishedTime  string   `yaml:"publishedTime"`
	ModifiedTime   string   `yaml:"modifiedTime"`
	ExpirationTime string   `yaml:"expirationTime"`
	Authors        []string `yaml:"authors"`
	Section        string   `yaml:"section"`
	Tags           []string `yaml:"tags"`
}

type Video struct {
	Actors      []Actor  `yaml:"actors"`
	Directors   []string `yaml:"directors"`
	Writers     []string `yaml:"writers"`
	Duration    *int     `yaml:"duration"`
	ReleaseDate string   `yaml:"releaseDate"`
	Tags        []string `yaml:"tags"`
	Series      string   `yaml:"series"`
}

type Actor struct {
	Profile string `yaml:"profile"`
	Role    string `yaml:"role"`
}

type Facebook struct {
	AppID string `yaml:"appId"`
}

type Twitter struct {
	CardType string `yaml:"cardType"`
	Site     string `yaml:"site"`
	Handle   string `yaml:"handle"`
}

// MetaKind selects the attribute that identifies an additional meta tag.
type MetaKind int

const (
	MetaName MetaKind = iota + 1
	MetaProperty
	MetaHTTPEquiv
)

// Attribute returns the HTML attribute name for k, or "" for an unknown kind.
func (k MetaKind) Attribute() string {
	switch k {
	case MetaName:
		return "name"
	case MetaProperty:
		return "property"
	case MetaHTTPEquiv:
		return "http-equiv"
	default:
		return ""
	}
}

// MetaTag is an arbitrary <meta> element identified by exactly one of
// name, property or http-equiv. Build one with NameMeta, PropertyMeta or
// HTTPEquivMeta.
type MetaTag struct {
	Kind    MetaKind
	Key     string
	Content string
}

func NameMeta(name, content string) MetaTag {
	return MetaTag{Kind: MetaName, Key: name, Content: content}
}

func PropertyMeta(property, content string) MetaTag {
	return MetaTag{Kind: MetaProperty, Key: property, Content: content}
}

func HTTPEquivMeta(httpEquiv, content string) MetaTag {
	return MetaTag{Kind: MetaHTTPEquiv, Key: httpEquiv, Content: content}
}

// LinkTag is an arbitrary <link> element. Rel and Href are always rendered.
type LinkTag struct {
	Rel         string `yaml:"rel"`
	Href        string `yaml:"href"`
	Sizes       string `yaml:"sizes"`
	Media       string `yaml:"media"`
	Type        string `yaml:"type"`
	Color       string `yaml:"color"`
	As          string `yaml:"as"`
	CrossOrigin string `yaml:"crossOrigin"`
}

// Bool returns a pointer to v, for the optional boolean fields of Config.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for the optional integer fields of Config.
func Int(v int) *int { return &v }
