package shared

// =====================================================
// ASYNQ TASK TYPES AND QUEUES
// =====================================================

const (
	TypePaymentReceipt = "email:payment_receipt"
	TypeOwnerRentAlert = "email:owner_rent_alert"
)

const (
	QueueEmail = "email"
)
