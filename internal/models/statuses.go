package models

type UserStatus string
type ProjectStatus string
type ProjectCategory string
type BudgetType string
type ProjectPriority string
type BidStatus string
type MessageType string
type RatingType string
type PaymentStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"

	ProjectStatusOpen       ProjectStatus = "open"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
	ProjectStatusDisputed   ProjectStatus = "disputed"

	CategoryAcademicTutoring ProjectCategory = "academic-tutoring"
	CategoryCreativeDesign   ProjectCategory = "creative-design"
	CategoryTechServices     ProjectCategory = "tech-services"
	CategoryPhotography      ProjectCategory = "photography"
	CategoryFitnessTraining  ProjectCategory = "fitness-training"
	CategoryLanguageLearning ProjectCategory = "language-learning"
	CategoryEventManagement  ProjectCategory = "event-management"
	CategoryContentWriting   ProjectCategory = "content-writing"
	CategoryOther            ProjectCategory = "other"

	BudgetTypeFixed  BudgetType = "fixed"
	BudgetTypeHourly BudgetType = "hourly"

	PriorityLow    ProjectPriority = "low"
	PriorityMedium ProjectPriority = "medium"
	PriorityHigh   ProjectPriority = "high"
	PriorityUrgent ProjectPriority = "urgent"

	BidStatusPending   BidStatus = "pending"
	BidStatusAccepted  BidStatus = "accepted"
	BidStatusRejected  BidStatus = "rejected"
	BidStatusWithdrawn BidStatus = "withdrawn"

	MessageTypeText   MessageType = "text"
	MessageTypeFile   MessageType = "file"
	MessageTypeImage  MessageType = "image"
	MessageTypeSystem MessageType = "system"

	RatingTypeClientToFreelancer RatingType = "client-to-freelancer"
	RatingTypeFreelancerToClient RatingType = "freelancer-to-client"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// ValidCategory reports whether c is a member of the closed category enum.
// Membership is validated at the boundary rather than left to the storage layer.
func ValidCategory(c ProjectCategory) bool {
	switch c {
	case CategoryAcademicTutoring, CategoryCreativeDesign, CategoryTechServices,
		CategoryPhotography, CategoryFitnessTraining, CategoryLanguageLearning,
		CategoryEventManagement, CategoryContentWriting, CategoryOther:
		return true
	}
	return false
}

// ValidRatingType reports whether t is one of the two rating directions.
func ValidRatingType(t RatingType) bool {
	return t == RatingTypeClientToFreelancer || t == RatingTypeFreelancerToClient
}
