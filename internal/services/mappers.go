package services

import (
	"encoding/json"

	"gigcampus_backend/internal/models"
	"gigcampus_backend/internal/services/dto"

	"gorm.io/datatypes"
)

// JSON column helpers. A decode failure on read is treated as an empty
// value rather than a request failure, the column is app-written only.

func jsonFromStrings(values []string) (datatypes.JSON, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func stringsFromJSON(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return []string{}
	}
	return values
}

func jsonFromCriteria(criteria map[string]int) (datatypes.JSON, error) {
	if criteria == nil {
		return nil, nil
	}
	raw, err := json.Marshal(criteria)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func criteriaFromJSON(raw datatypes.JSON) map[string]int {
	if len(raw) == 0 {
		return nil
	}
	var criteria map[string]int
	if err := json.Unmarshal(raw, &criteria); err != nil {
		return nil
	}
	return criteria
}

// Model -> DTO mappers.

func buildUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		IsStudent:      u.IsStudent,
		University:     u.University,
		Course:         u.Course,
		Year:           u.Year,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		Phone:          u.Phone,
		Skills:         stringsFromJSON(u.Skills),
		Reputation:     u.Reputation,
		TotalEarnings:  u.TotalEarnings,
		IsVerified:     u.IsVerified,
		Status:         string(u.Status),
		CreatedAt:      u.CreatedAt,
	}
}

func buildPublicUserResponse(u *models.User) *dto.PublicUserResponse {
	if u == nil {
		return nil
	}
	return &dto.PublicUserResponse{
		ID:             u.ID,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		IsStudent:      u.IsStudent,
		University:     u.University,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		Skills:         stringsFromJSON(u.Skills),
		Reputation:     u.Reputation,
		IsVerified:     u.IsVerified,
	}
}

func buildProjectResponse(p *models.Project) dto.ProjectResponse {
	resp := dto.ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Category:     string(p.Category),
		Budget:       p.Budget,
		BudgetType:   string(p.BudgetType),
		Deadline:     p.Deadline,
		Location:     p.Location,
		IsRemote:     p.IsRemote,
		Requirements: stringsFromJSON(p.Requirements),
		Attachments:  stringsFromJSON(p.Attachments),
		PostedBy:     p.PostedBy,
		AssignedTo:   p.AssignedTo,
		Status:       string(p.Status),
		Priority:     string(p.Priority),
		Views:        p.Views,
		IsUrgent:     p.IsUrgent,
		AcceptedAt:   p.AcceptedAt,
		CompletedAt:  p.CompletedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Poster:       buildPublicUserResponse(p.Poster),
		BidCount:     len(p.Bids),
	}
	for i := range p.Bids {
		resp.Bids = append(resp.Bids, buildBidResponse(&p.Bids[i]))
	}
	return resp
}

func buildBidResponse(b *models.Bid) dto.BidResponse {
	resp := dto.BidResponse{
		ID:           b.ID,
		ProjectID:    b.ProjectID,
		UserID:       b.UserID,
		Amount:       b.Amount,
		Message:      b.Message,
		DeliveryTime: b.DeliveryTime,
		Status:       string(b.Status),
		IsSelected:   b.IsSelected,
		AcceptedAt:   b.AcceptedAt,
		RejectedAt:   b.RejectedAt,
		CreatedAt:    b.CreatedAt,
		Bidder:       buildPublicUserResponse(b.Bidder),
	}
	if b.Project != nil {
		project := buildProjectResponse(b.Project)
		resp.Project = &project
	}
	return resp
}

func buildRatingResponse(r *models.Rating) dto.RatingResponse {
	return dto.RatingResponse{
		ID:           r.ID,
		ProjectID:    r.ProjectID,
		RaterUserID:  r.RaterUserID,
		RatedUserID:  r.RatedUserID,
		Score:        r.Score,
		Comment:      r.Comment,
		RatingType:   string(r.RatingType),
		Criteria:     criteriaFromJSON(r.Criteria),
		HelpfulVotes: r.HelpfulVotes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Rater:        buildPublicUserResponse(r.Rater),
	}
}

func buildMessageResponse(m *models.Message) dto.MessageResponse {
	resp := dto.MessageResponse{
		ID:         m.ID,
		ProjectID:  m.ProjectID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Type:       string(m.Type),
		ReplyToID:  m.ReplyToID,
		IsRead:     m.IsRead,
		ReadAt:     m.ReadAt,
		EditedAt:   m.EditedAt,
		CreatedAt:  m.CreatedAt,
		Sender:     buildPublicUserResponse(m.Sender),
	}
	if m.ReplyTo != nil && !m.ReplyTo.IsDeleted {
		reply := buildMessageResponse(m.ReplyTo)
		resp.ReplyTo = &reply
	}
	return resp
}

func buildPaymentResponse(t *models.PaymentTransaction) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		PayerID:   t.PayerID,
		PayeeID:   t.PayeeID,
		Amount:    t.Amount,
		Currency:  t.Currency,
		Status:    string(t.Status),
		IntentID:  t.IntentID,
		PaidAt:    t.PaidAt,
		CreatedAt: t.CreatedAt,
	}
}
