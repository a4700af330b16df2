package models

// SubscriptionStatus gates access to paid content. An absent status on the
// wire is treated as inactive.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionInactive SubscriptionStatus = "INACTIVE"
)

// User is the authenticated account record. It is owned by the session store;
// other stores read it but never mutate it.
type User struct {
	ID                 string             `json:"id"`
	Email              string             `json:"email"`
	FirstName          string             `json:"firstName"`
	LastName           string             `json:"lastName"`
	Phone              string             `json:"phone,omitempty"`
	Avatar             string             `json:"avatar,omitempty"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus,omitempty"`
}

// Subscription normalizes the absent-means-inactive wire convention.
func (u *User) Subscription() SubscriptionStatus {
	if u == nil || u.SubscriptionStatus == "" {
		return SubscriptionInactive
	}
	return u.SubscriptionStatus
}

type Question struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	UserID    string     `json:"userId"`
	CreatedAt string     `json:"createdAt"`
	Responses []Response `json:"responses"`
}

type Response struct {
	ID           string         `json:"id"`
	ResponseText string         `json:"responseText"`
	UserID       string         `json:"userId"`
	QuestionID   string         `json:"questionId"`
	CreatedAt    string         `json:"createdAt"`
	User         *AuthorSummary `json:"user,omitempty"`
}

// AuthorSummary is the embedded author record some endpoints attach to
// responses for display.
type AuthorSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Survey struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	PaymentOption string   `json:"paymentOption"`
	UserID        string   `json:"userId"`
	File          *FileRef `json:"file,omitempty"`
}

// FileRef points at an already-uploaded file on the server.
type FileRef struct {
	URI      string `json:"uri"`
	Name     string `json:"name,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// FileUpload carries local file content toward a multipart upload endpoint.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

type SurveyResponse struct {
	ID        string            `json:"id"`
	SurveyID  string            `json:"surveyId"`
	UserID    string            `json:"userId"`
	Answers   map[string]string `json:"answers"`
	CreatedAt string            `json:"createdAt"`
}

type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Likes        int       `json:"likes"`
	Views        int       `json:"views"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	VideoSource  string    `json:"videoSource"`
	UserID       string    `json:"userId"`
	Comments     []Comment `json:"comments"`
	IsBookmarked bool      `json:"isBookmarked"`
}

type Comment struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	UserID  string `json:"userId"`
	VideoID string `json:"videoId"`
}

type PaymentProvider string

const (
	ProviderMTN    PaymentProvider = "MTN"
	ProviderAirtel PaymentProvider = "AIRTEL"
)

func (p PaymentProvider) Valid() bool {
	return p == ProviderMTN || p == ProviderAirtel
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

type SubscriptionType string

const (
	SubscriptionWeekly  SubscriptionType = "WEEKLY"
	SubscriptionMonthly SubscriptionType = "MONTHLY"
)

func (t SubscriptionType) Valid() bool {
	return t == SubscriptionWeekly || t == SubscriptionMonthly
}

// Payment records a mobile-money charge and the subscription window it buys.
type Payment struct {
	ID               string           `json:"id"`
	Amount           int64            `json:"amount"`
	PhoneNumber      string           `json:"phoneNumber"`
	Provider         PaymentProvider  `json:"provider"`
	Status           PaymentStatus    `json:"status"`
	UserID           string           `json:"userId"`
	SubscriptionType SubscriptionType `json:"subscriptionType"`
	StartDate        string           `json:"startDate,omitempty"`
	EndDate          string           `json:"endDate,omitempty"`
}

type Reward struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Points  int    `json:"points"`
	Claimed bool   `json:"claimed"`
	UserID  string `json:"userId,omitempty"`
}
