package constants

const (
	AppName = "ledger"

	MaxNameLen        = 100
	MaxDescriptionLen = 255
	MaxReferenceLen   = 64
	MaxIdempotencyLen = 128
	MaxMetadataKeys   = 20

	// OpeningBalanceMemo describes the deposit that seeds a new account.
	OpeningBalanceMemo = "Opening balance"

	// OperatorID is the requester identity used by the CLI.
	OperatorID = "operator"
)
