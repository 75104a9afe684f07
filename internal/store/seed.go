/**
 * @description
 * This file builds the deterministic demo dataset the in-memory repository
 * is seeded with and that the ops reseed tool restores. Fixed UUIDs keep
 * demo walkthroughs and support scripts reproducible across restarts;
 * timestamps are taken relative to the current time so that "this month"
 * style aggregates stay meaningful.
 */

package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/eventra/admin-service/internal/domain"
)

type dataset struct {
	Vendors  []domain.Vendor
	Bookings []domain.Booking
	Payments []domain.Payment
	Payouts  []domain.Payout
	Disputes []domain.Dispute
}

var (
	seedVendorAurora   = uuid.MustParse("7a1d2f30-0001-4c5e-9b1a-111111111111")
	seedVendorCaterly  = uuid.MustParse("7a1d2f30-0002-4c5e-9b1a-222222222222")
	seedVendorLumen    = uuid.MustParse("7a1d2f30-0003-4c5e-9b1a-333333333333")
	seedVendorStagecra = uuid.MustParse("7a1d2f30-0004-4c5e-9b1a-444444444444")

	seedBookingGala    = uuid.MustParse("b00c1e00-0001-4c5e-9b1a-111111111111")
	seedBookingSummit  = uuid.MustParse("b00c1e00-0002-4c5e-9b1a-222222222222")
	seedBookingWedding = uuid.MustParse("b00c1e00-0003-4c5e-9b1a-333333333333")
	seedBookingLaunch  = uuid.MustParse("b00c1e00-0004-4c5e-9b1a-444444444444")
	seedBookingRetreat = uuid.MustParse("b00c1e00-0005-4c5e-9b1a-555555555555")

	seedPaymentGala    = uuid.MustParse("9a9e0000-0001-4c5e-9b1a-111111111111")
	seedPaymentSummit  = uuid.MustParse("9a9e0000-0002-4c5e-9b1a-222222222222")
	seedPaymentWedding = uuid.MustParse("9a9e0000-0003-4c5e-9b1a-333333333333")
	seedPaymentLaunch  = uuid.MustParse("9a9e0000-0004-4c5e-9b1a-444444444444")
	seedPaymentRetreat = uuid.MustParse("9a9e0000-0005-4c5e-9b1a-555555555555")

	seedPayoutGalaRes    = uuid.MustParse("0f0f0000-0001-4c5e-9b1a-111111111111")
	seedPayoutGalaFinal  = uuid.MustParse("0f0f0000-0002-4c5e-9b1a-222222222222")
	seedPayoutSummitRes  = uuid.MustParse("0f0f0000-0003-4c5e-9b1a-333333333333")
	seedPayoutWeddingRes = uuid.MustParse("0f0f0000-0004-4c5e-9b1a-444444444444")
	seedPayoutLaunchRes  = uuid.MustParse("0f0f0000-0005-4c5e-9b1a-555555555555")
	seedPayoutRetreatRes = uuid.MustParse("0f0f0000-0006-4c5e-9b1a-666666666666")

	seedDisputeWedding = uuid.MustParse("d15b0000-0001-4c5e-9b1a-111111111111")
	seedDisputeSummit  = uuid.MustParse("d15b0000-0002-4c5e-9b1a-222222222222")
	seedDisputeGala    = uuid.MustParse("d15b0000-0003-4c5e-9b1a-333333333333")
)

func demoDataset() dataset {
	now := time.Now().UTC()
	organizer := uuid.MustParse("06e60000-0001-4c5e-9b1a-111111111111")

	vendors := []domain.Vendor{
		{
			ID:                seedVendorAurora,
			Type:              domain.VendorTypeVenueOwner,
			Name:              "Aurora Hall",
			Email:             "bookings@aurorahall.example",
			Phone:             "+1-555-0101",
			VerificationState: domain.VerificationApproved,
			PayoutEnabled:     true,
			Submission: domain.VendorSubmission{
				SubmittedBy:   "owner@aurorahall.example",
				Documents:     []string{"business-license.pdf", "insurance-certificate.pdf"},
				LastUpdatedAt: now.AddDate(0, -2, 0),
			},
			Rating:            4.8,
			CompletedBookings: 42,
			Version:           1,
			CreatedAt:         now.AddDate(0, -6, 0),
			UpdatedAt:         now.AddDate(0, -2, 0),
		},
		{
			ID:                seedVendorCaterly,
			Type:              domain.VendorTypeServiceProvider,
			Name:              "Caterly Fine Foods",
			Email:             "hello@caterly.example",
			Phone:             "+1-555-0102",
			VerificationState: domain.VerificationPending,
			PayoutEnabled:     false,
			Submission: domain.VendorSubmission{
				SubmittedBy:   "hello@caterly.example",
				Documents:     []string{"food-handling-permit.pdf"},
				LastUpdatedAt: now.AddDate(0, 0, -5),
			},
			Rating:            0,
			CompletedBookings: 0,
			Version:           1,
			CreatedAt:         now.AddDate(0, 0, -5),
			UpdatedAt:         now.AddDate(0, 0, -5),
		},
		{
			ID:                seedVendorLumen,
			Type:              domain.VendorTypeServiceProvider,
			Name:              "Lumen AV Productions",
			Email:             "ops@lumenav.example",
			Phone:             "+1-555-0103",
			VerificationState: domain.VerificationNeedsChanges,
			PayoutEnabled:     false,
			Submission: domain.VendorSubmission{
				SubmittedBy:   "ops@lumenav.example",
				Documents:     []string{"equipment-inventory.pdf"},
				Note:          "Insurance certificate has expired; please upload a current one.",
				LastUpdatedAt: now.AddDate(0, 0, -12),
			},
			Rating:            4.1,
			CompletedBookings: 7,
			Version:           2,
			CreatedAt:         now.AddDate(0, -3, 0),
			UpdatedAt:         now.AddDate(0, 0, -12),
		},
		{
			ID:                seedVendorStagecra, // payout circuit breaker tripped
			Type:              domain.VendorTypeVenueOwner,
			Name:              "Stagecraft Loft",
			Email:             "admin@stagecraftloft.example",
			Phone:             "+1-555-0104",
			VerificationState: domain.VerificationDisabledPayout,
			PayoutEnabled:     false,
			Submission: domain.VendorSubmission{
				SubmittedBy:   "admin@stagecraftloft.example",
				Documents:     []string{"lease-agreement.pdf"},
				Note:          "Chargeback pattern under fraud review.",
				LastUpdatedAt: now.AddDate(0, 0, -3),
			},
			Rating:            3.9,
			CompletedBookings: 15,
			Version:           3,
			CreatedAt:         now.AddDate(0, -8, 0),
			UpdatedAt:         now.AddDate(0, 0, -3),
		},
	}

	bookings := []domain.Booking{
		{
			ID:          seedBookingGala,
			OrganizerID: organizer,
			VendorID:    seedVendorAurora,
			EventName:   "Harborview Charity Gala",
			EventDate:   now.AddDate(0, 0, 10),
			State:       domain.BookingActive,
			Milestones: []domain.Milestone{
				{Label: "CREATED", Timestamp: now.AddDate(0, -1, 0)},
				{Label: "VENDOR_APPROVED", Timestamp: now.AddDate(0, -1, 2)},
				{Label: "READY_FOR_PAYMENT", Timestamp: now.AddDate(0, -1, 4)},
				{Label: "ACTIVE", Description: "Reservation payment received", Timestamp: now.AddDate(0, 0, -20)},
			},
			TotalAmountCents: 1250000,
			CreatedAt:        now.AddDate(0, -1, 0),
			UpdatedAt:        now.AddDate(0, 0, -20),
		},
		{
			ID:          seedBookingSummit,
			OrganizerID: organizer,
			VendorID:    seedVendorLumen,
			EventName:   "Product Summit AV Package",
			EventDate:   now.AddDate(0, 0, 18),
			State:       domain.BookingActive,
			Milestones: []domain.Milestone{
				{Label: "CREATED", Timestamp: now.AddDate(0, 0, -25)},
				{Label: "VENDOR_APPROVED", Timestamp: now.AddDate(0, 0, -24)},
				{Label: "COUNTERED", Description: "Vendor adjusted rig pricing", Timestamp: now.AddDate(0, 0, -23)},
				{Label: "READY_FOR_PAYMENT", Timestamp: now.AddDate(0, 0, -22)},
				{Label: "ACTIVE", Timestamp: now.AddDate(0, 0, -15)},
			},
			TotalAmountCents: 480000,
			CreatedAt:        now.AddDate(0, 0, -25),
			UpdatedAt:        now.AddDate(0, 0, -15),
		},
		{
			ID:          seedBookingWedding,
			OrganizerID: organizer,
			VendorID:    seedVendorStagecra,
			EventName:   "Riverside Wedding Reception",
			EventDate:   now.AddDate(0, 0, -8),
			State:       domain.BookingCompleted,
			Milestones: []domain.Milestone{
				{Label: "CREATED", Timestamp: now.AddDate(0, -2, 0)},
				{Label: "VENDOR_APPROVED", Timestamp: now.AddDate(0, -2, 1)},
				{Label: "READY_FOR_PAYMENT", Timestamp: now.AddDate(0, -2, 3)},
				{Label: "ACTIVE", Timestamp: now.AddDate(0, -1, 0)},
				{Label: "COMPLETED", Timestamp: now.AddDate(0, 0, -7)},
			},
			TotalAmountCents: 890000,
			CreatedAt:        now.AddDate(0, -2, 0),
			UpdatedAt:        now.AddDate(0, 0, -7),
		},
		{
			ID:          seedBookingLaunch,
			OrganizerID: organizer,
			VendorID:    seedVendorAurora,
			EventName:   "Startup Launch Party",
			EventDate:   now.AddDate(0, 1, 5),
			State:       domain.BookingReadyForPayment,
			Milestones: []domain.Milestone{
				{Label: "CREATED", Timestamp: now.AddDate(0, 0, -4)},
				{Label: "VENDOR_APPROVED", Timestamp: now.AddDate(0, 0, -3)},
				{Label: "READY_FOR_PAYMENT", Timestamp: now.AddDate(0, 0, -2)},
			},
			TotalAmountCents: 360000,
			CreatedAt:        now.AddDate(0, 0, -4),
			UpdatedAt:        now.AddDate(0, 0, -2),
		},
		{
			ID:          seedBookingRetreat,
			OrganizerID: organizer,
			VendorID:    seedVendorCaterly,
			EventName:   "Engineering Retreat Catering",
			EventDate:   now.AddDate(0, 0, -30),
			State:       domain.BookingCanceled,
			CancellationReason: ptr("Organizer postponed the retreat"),
			Milestones: []domain.Milestone{
				{Label: "CREATED", Timestamp: now.AddDate(0, -2, -10)},
				{Label: "CANCELED", Description: "Organizer postponed the retreat", Timestamp: now.AddDate(0, -2, 0)},
			},
			TotalAmountCents: 150000,
			CreatedAt:        now.AddDate(0, -2, -10),
			UpdatedAt:        now.AddDate(0, -2, 0),
		},
	}

	payments := []domain.Payment{
		{ID: seedPaymentGala, BookingID: seedBookingGala, Status: domain.PaymentSucceeded, AmountCents: 1250000, CreatedAt: now.AddDate(0, 0, -21), UpdatedAt: now.AddDate(0, 0, -20)},
		{ID: seedPaymentSummit, BookingID: seedBookingSummit, Status: domain.PaymentProcessing, AmountCents: 480000, CreatedAt: now.AddDate(0, 0, -16), UpdatedAt: now.AddDate(0, 0, -15)},
		{ID: seedPaymentWedding, BookingID: seedBookingWedding, Status: domain.PaymentSucceeded, AmountCents: 890000, CreatedAt: now.AddDate(0, -1, -2), UpdatedAt: now.AddDate(0, -1, 0)},
		{ID: seedPaymentLaunch, BookingID: seedBookingLaunch, Status: domain.PaymentRequiresConfirmation, AmountCents: 360000, CreatedAt: now.AddDate(0, 0, -2), UpdatedAt: now.AddDate(0, 0, -2)},
		{ID: seedPaymentRetreat, BookingID: seedBookingRetreat, Status: domain.PaymentCanceled, AmountCents: 150000, CreatedAt: now.AddDate(0, -2, -9), UpdatedAt: now.AddDate(0, -2, 0)},
	}

	payouts := []domain.Payout{
		{ID: seedPayoutGalaRes, VendorID: seedVendorAurora, BookingID: seedBookingGala, PaymentID: seedPaymentGala, Type: domain.PayoutTypeReservation, Status: domain.PayoutPaid, AmountCents: 375000, Version: 4, CreatedAt: now.AddDate(0, 0, -19), UpdatedAt: now.AddDate(0, 0, -14)},
		{ID: seedPayoutGalaFinal, VendorID: seedVendorAurora, BookingID: seedBookingGala, PaymentID: seedPaymentGala, Type: domain.PayoutTypeFinal, Status: domain.PayoutPendingAdminApproval, AmountCents: 875000, Version: 2, CreatedAt: now.AddDate(0, 0, -14), UpdatedAt: now.AddDate(0, 0, -13)},
		{ID: seedPayoutSummitRes, VendorID: seedVendorLumen, BookingID: seedBookingSummit, PaymentID: seedPaymentSummit, Type: domain.PayoutTypeReservation, Status: domain.PayoutPendingAdminApproval, AmountCents: 144000, Version: 2, CreatedAt: now.AddDate(0, 0, -12), UpdatedAt: now.AddDate(0, 0, -11)},
		{ID: seedPayoutWeddingRes, VendorID: seedVendorStagecra, BookingID: seedBookingWedding, PaymentID: seedPaymentWedding, Type: domain.PayoutTypeFinal, Status: domain.PayoutHeld, AmountCents: 890000, Note: ptr("Held pending fraud review of vendor"), Version: 3, CreatedAt: now.AddDate(0, -1, 0), UpdatedAt: now.AddDate(0, 0, -3)},
		{ID: seedPayoutLaunchRes, VendorID: seedVendorAurora, BookingID: seedBookingLaunch, PaymentID: seedPaymentLaunch, Type: domain.PayoutTypeReservation, Status: domain.PayoutRequested, AmountCents: 108000, Version: 1, CreatedAt: now.AddDate(0, 0, -2), UpdatedAt: now.AddDate(0, 0, -2)},
		{ID: seedPayoutRetreatRes, VendorID: seedVendorCaterly, BookingID: seedBookingRetreat, PaymentID: seedPaymentRetreat, Type: domain.PayoutTypeReservation, Status: domain.PayoutReversed, AmountCents: 45000, Version: 3, CreatedAt: now.AddDate(0, -2, -8), UpdatedAt: now.AddDate(0, -2, 0)},
	}

	disputes := []domain.Dispute{
		{
			ID:        seedDisputeWedding,
			BookingID: seedBookingWedding,
			OpenedBy:  "organizer@riverside.example",
			Reason:    "Venue double-booked the loft for two hours of the reception",
			Status:    domain.DisputeOpen,
			Version:   1,
			CreatedAt: now.AddDate(0, 0, -6),
			UpdatedAt: now.AddDate(0, 0, -6),
		},
		{
			ID:        seedDisputeSummit,
			BookingID: seedBookingSummit,
			OpenedBy:  "organizer@summit.example",
			Reason:    "Delivered AV rig did not match the countered quote",
			Status:    domain.DisputeUnderReview,
			Version:   2,
			CreatedAt: now.AddDate(0, 0, -9),
			UpdatedAt: now.AddDate(0, 0, -4),
		},
		{
			ID:         seedDisputeGala,
			BookingID:  seedBookingGala,
			OpenedBy:   "organizer@harborview.example",
			Reason:     "Deposit charged twice",
			Status:     domain.DisputeResolved,
			Resolution: ptr("Duplicate charge refunded by finance"),
			ResolvedBy: ptr("admin@eventra.example"),
			ResolvedAt: ptrTime(now.AddDate(0, 0, -17)),
			Version:    3,
			CreatedAt:  now.AddDate(0, 0, -19),
			UpdatedAt:  now.AddDate(0, 0, -17),
		},
	}

	return dataset{
		Vendors:  vendors,
		Bookings: bookings,
		Payments: payments,
		Payouts:  payouts,
		Disputes: disputes,
	}
}

func ptr(s string) *string { return &s }

func ptrTime(t time.Time) *time.Time { return &t }
