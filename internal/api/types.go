package api

// Enumerated values mirror the backend exactly; the classify package owns
// display formatting.
const (
	TypeInPerson          = "IN_PERSON"
	TypeVideoConsultation = "VIDEO_CONSULTATION"
	TypeFollowUp          = "FOLLOW_UP"

	StatusRequested   = "REQUESTED"
	StatusConfirmed   = "CONFIRMED"
	StatusCompleted   = "COMPLETED"
	StatusCanceled    = "CANCELED"
	StatusRescheduled = "RESCHEDULED"

	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
	RiskUnknown  = "UNKNOWN"

	CaseOpen       = "OPEN"
	CaseMonitoring = "MONITORING"
	CaseClosed     = "CLOSED"
	CaseReferred   = "REFERRED"
)

// Doctor is a connected doctor as listed for booking.
type Doctor struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Image           string   `json:"image,omitempty"`
	Role            string   `json:"role"`
	Specialties     []string `json:"specialties"`
	ConsultationFee float64  `json:"consultationFee,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	Location        string   `json:"location,omitempty"`
}

// Slot is a concrete bookable timestamp with its display label.
type Slot struct {
	Time          string `json:"time"`
	FormattedDate string `json:"formattedDate"`
}

// AvailabilityDate is one calendar day of a doctor's availability.
type AvailabilityDate struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"dayOfWeek"`
	Day       int    `json:"day"`
	Month     string `json:"month"`
	Slots     []Slot `json:"slots"`
}

// AppointmentDoctor is the doctor snapshot embedded in an appointment.
type AppointmentDoctor struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Image       string   `json:"image,omitempty"`
	Role        string   `json:"role"`
	Specialties []string `json:"specialties,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
}

// AppointmentCase links an appointment to a lesion case.
type AppointmentCase struct {
	ID           string `json:"id"`
	CaseNumber   string `json:"caseNumber"`
	RiskLevel    string `json:"riskLevel"`
	BodyLocation string `json:"bodyLocation,omitempty"`
}

// Appointment is the server-owned appointment record.
type Appointment struct {
	ID              string            `json:"id"`
	Doctor          AppointmentDoctor `json:"doctor"`
	Date            string            `json:"date"`
	FormattedDate   string            `json:"formattedDate"`
	FormattedTime   string            `json:"formattedTime"`
	Duration        int               `json:"duration"`
	Type            string            `json:"type"`
	Status          string            `json:"status"`
	ReasonForVisit  string            `json:"reasonForVisit,omitempty"`
	Location        string            `json:"location,omitempty"`
	Case            *AppointmentCase  `json:"case,omitempty"`
	FollowUpNeeded  bool              `json:"followUpNeeded,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	ConsultationFee float64           `json:"consultationFee,omitempty"`
}

// CreateAppointmentRequest is the booking submission payload.
type CreateAppointmentRequest struct {
	DoctorID       string `json:"doctorId"`
	Date           string `json:"date"`
	Type           string `json:"type"`
	ReasonForVisit string `json:"reasonForVisit"`
	Location       string `json:"location,omitempty"`
}

// Pagination is the cursor block on paged list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// CaseImage is a stored lesion photo reference.
type CaseImage struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	CaptureDate  string `json:"captureDate"`
	BodyLocation string `json:"bodyLocation,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// CaseAnalysis is the latest analysis summary on a case.
type CaseAnalysis struct {
	ID               string  `json:"id"`
	RiskLevel        string  `json:"riskLevel"`
	Confidence       float64 `json:"confidence"`
	LesionType       string  `json:"lesionType"`
	ReviewedByDoctor bool    `json:"reviewedByDoctor"`
	ABCDEFlags       int     `json:"abcdeFlags"`
}

// CaseSummary is one history list entry.
type CaseSummary struct {
	ID             string        `json:"id"`
	CaseNumber     string        `json:"caseNumber"`
	Date           string        `json:"date"`
	FormattedDate  string        `json:"formattedDate"`
	Status         string        `json:"status"`
	RiskLevel      string        `json:"riskLevel"`
	LesionType     string        `json:"lesionType"`
	BodyLocation   string        `json:"bodyLocation,omitempty"`
	Diagnosis      string        `json:"diagnosis,omitempty"`
	ImageCount     int           `json:"imageCount"`
	MainImage      *CaseImage    `json:"mainImage"`
	LatestAnalysis *CaseAnalysis `json:"latestAnalysis"`
}

// HistoryPage is one page of case history.
type HistoryPage struct {
	History    []CaseSummary `json:"history"`
	Pagination Pagination    `json:"pagination"`
}

// CaseNote is a free-text note attached to a case.
type CaseNote struct {
	ID            string `json:"id"`
	Content       string `json:"content"`
	CreatedAt     string `json:"createdAt"`
	FormattedDate string `json:"formattedDate"`
	AuthorName    string `json:"authorName,omitempty"`
}

// CaseDetail is the full case/result record.
type CaseDetail struct {
	ID              string        `json:"id"`
	CaseNumber      string        `json:"caseNumber"`
	CreatedAt       string        `json:"createdAt"`
	UpdatedAt       string        `json:"updatedAt"`
	FormattedDate   string        `json:"formattedDate"`
	Status          string        `json:"status"`
	RiskLevel       string        `json:"riskLevel"`
	LesionType      string        `json:"lesionType"`
	BodyLocation    string        `json:"bodyLocation,omitempty"`
	Symptoms        string        `json:"symptoms,omitempty"`
	Diagnosis       string        `json:"diagnosis,omitempty"`
	TreatmentPlan   string        `json:"treatmentPlan,omitempty"`
	Images          []CaseImage   `json:"images"`
	LatestAnalysis  *CaseAnalysis `json:"latestAnalysis,omitempty"`
	NextAppointment *Appointment  `json:"nextAppointment,omitempty"`
	Notes           []CaseNote    `json:"notes"`
}

// DashboardAnalytics is the counters block on the home dashboard.
type DashboardAnalytics struct {
	TotalScans         int  `json:"totalScans"`
	DaysSinceLastCheck int  `json:"daysSinceLastCheck"`
	MonitoredLesions   int  `json:"monitoredLesions"`
	HighRiskCases      int  `json:"highRiskCases"`
	MediumRiskCases    int  `json:"mediumRiskCases"`
	LowRiskCases       int  `json:"lowRiskCases"`
	FollowUpNeeded     bool `json:"followUpNeeded"`
}

// DashboardResult is a recent-result row on the dashboard.
type DashboardResult struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	RiskLevel string `json:"riskLevel"`
}

// DashboardAppointment is the next upcoming appointment on the dashboard.
type DashboardAppointment struct {
	ID              string `json:"id"`
	DoctorName      string `json:"doctorName"`
	DoctorSpecialty string `json:"doctorSpecialty"`
	Date            string `json:"date"`
	Time            string `json:"time,omitempty"`
}

// Dashboard is the home screen payload.
type Dashboard struct {
	Analytics           *DashboardAnalytics   `json:"analytics,omitempty"`
	RecentResults       []DashboardResult     `json:"recentResults"`
	UpcomingAppointment *DashboardAppointment `json:"upcomingAppointment,omitempty"`
}

// ChatMessage is one message in a patient-doctor thread.
type ChatMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	SenderRole string `json:"senderRole"`
	Content    string `json:"content"`
	CreatedAt  string `json:"createdAt"`
	Read       bool   `json:"read"`
}

// Profile is the account profile payload.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
	Role  string `json:"role"`
}

// AuthResponse is the login/register payload.
type AuthResponse struct {
	User         AuthUser `json:"user"`
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
}

// AuthUser is the user block inside AuthResponse.
type AuthUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}
