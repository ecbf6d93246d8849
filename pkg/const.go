package pkg

const (
	HeaderTraceId   string = "X-Trace-Id"
	HeaderRequestId string = "X-Request-Id"
)

const (
	TraceId   string = "trace_id"
	RequestId string = "request_id"
)

// FraudLabel is the fixed vocabulary of the fraud_classification column.
type FraudLabel string

const (
	FraudLabelFraud    FraudLabel = "Fraud"
	FraudLabelNonFraud FraudLabel = "Non-Fraud"
)

// FilterAll is the sentinel meaning "no filter" for dashboard slicers.
const FilterAll string = "All"

// Significance threshold for the fraud/non-fraud mean comparison. Fixed, not configurable.
const SignificanceLevel = 0.05

// Default parameters and accepted ranges for the anomaly detectors.
const (
	ZScoreThresholdDefault = 3.0
	ZScoreThresholdMin     = 2.0
	ZScoreThresholdMax     = 5.0

	IQRMultiplierDefault = 1.5
	IQRMultiplierMin     = 1.0
	IQRMultiplierMax     = 3.0
)
