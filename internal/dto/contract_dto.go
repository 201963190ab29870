package dto

import (
	"time"

	"github.com/edulane/edulane-api/internal/models"
)

// ContractCreateRequest describes the admin payload for creating a contract.
type ContractCreateRequest struct {
	TeacherProfileID      uint   `json:"teacher_profile_id" validate:"required"`
	StudentID             uint   `json:"student_id" validate:"required"`
	BillingType           string `json:"billing_type" validate:"required,oneof=hourly monthly"`
	PackageHours          int    `json:"package_hours" validate:"omitempty,min=0"`
	SubscriptionPeriodEnd string `json:"subscription_period_end" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	StartDate             string `json:"start_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// ContractStatusRequest changes a contract's lifecycle status.
type ContractStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active cancelled completed expired"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// ContractRenewRequest extends the subscription period.
type ContractRenewRequest struct {
	SubscriptionPeriodEnd string `json:"subscription_period_end" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// ContractAdjustHoursRequest force-sets the legacy remaining-hours pool.
type ContractAdjustHoursRequest struct {
	RemainingHours int    `json:"remaining_hours" validate:"min=0"`
	Reason         string `json:"reason" validate:"required,min=3"`
}

// ContractResponse is the serialized contract representation.
type ContractResponse struct {
	ID                    uint       `json:"id"`
	Code                  string     `json:"code"`
	TeacherProfileID      uint       `json:"teacher_profile_id"`
	StudentID             uint       `json:"student_id"`
	BillingType           string     `json:"billing_type"`
	PackageHours          int        `json:"package_hours"`
	RemainingHours        int        `json:"remaining_hours"`
	SubscriptionPeriodEnd *time.Time `json:"subscription_period_end"`
	Status                string     `json:"status"`
	HasActiveAccess       bool       `json:"has_active_access"`
	StartDate             time.Time  `json:"start_date"`
	EndDate               *time.Time `json:"end_date"`
	CreatedAt             time.Time  `json:"created_at"`
}

// NewContractResponse converts a model into a DTO, evaluating the access
// predicate at the given instant.
func NewContractResponse(model models.ContractSession, now time.Time) ContractResponse {
	return ContractResponse{
		ID:                    model.ID,
		Code:                  model.Code,
		TeacherProfileID:      model.TeacherProfileID,
		StudentID:             model.StudentID,
		BillingType:           model.BillingType,
		PackageHours:          model.PackageHours,
		RemainingHours:        model.RemainingHours,
		SubscriptionPeriodEnd: model.SubscriptionPeriodEnd,
		Status:                model.Status,
		HasActiveAccess:       model.HasActiveAccess(now),
		StartDate:             model.StartDate,
		EndDate:               model.EndDate,
		CreatedAt:             model.CreatedAt,
	}
}

// NewContractResponseSlice converts a slice of models into DTOs.
func NewContractResponseSlice(contracts []models.ContractSession, now time.Time) []ContractResponse {
	responses := make([]ContractResponse, 0, len(contracts))
	for _, contract := range contracts {
		responses = append(responses, NewContractResponse(contract, now))
	}
	return responses
}

// SubscriptionCreateRequest describes the admin payload for a subscription.
type SubscriptionCreateRequest struct {
	ParentUserID uint   `json:"parent_user_id" validate:"required"`
	StudentID    uint   `json:"student_id" validate:"required"`
	Kind         string `json:"kind" validate:"required,oneof=one_to_one group"`
	PeriodEnd    string `json:"period_end" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// SubscriptionResponse is the serialized subscription representation.
type SubscriptionResponse struct {
	ID              uint       `json:"id"`
	ParentUserID    uint       `json:"parent_user_id"`
	StudentID       uint       `json:"student_id"`
	Kind            string     `json:"kind"`
	PeriodEnd       *time.Time `json:"period_end"`
	Status          string     `json:"status"`
	HasActiveAccess bool       `json:"has_active_access"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewSubscriptionResponse converts a model into a DTO.
func NewSubscriptionResponse(model models.Subscription, now time.Time) SubscriptionResponse {
	return SubscriptionResponse{
		ID:              model.ID,
		ParentUserID:    model.ParentUserID,
		StudentID:       model.StudentID,
		Kind:            model.Kind,
		PeriodEnd:       model.PeriodEnd,
		Status:          model.Status,
		HasActiveAccess: model.HasActiveAccess(now),
		CreatedAt:       model.CreatedAt,
	}
}

// NewSubscriptionResponseSlice converts a slice of models into DTOs.
func NewSubscriptionResponseSlice(subscriptions []models.Subscription, now time.Time) []SubscriptionResponse {
	responses := make([]SubscriptionResponse, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		responses = append(responses, NewSubscriptionResponse(subscription, now))
	}
	return responses
}
