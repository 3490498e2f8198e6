package domain

const (
	maxImageBytes  = 5 << 20
	maxResumeBytes = 10 << 20
)

// uploadLimits lists the buckets uploads may target and their size cap.
var uploadLimits = map[string]int64{
	"avatars":       maxImageBytes,
	"company-logos": maxImageBytes,
	"vendor-logos":  maxImageBytes,
	"resumes":       maxResumeBytes,
}

// UploadLimit returns the size cap of bucket and whether uploads may target it.
func UploadLimit(bucket string) (int64, bool) {
	limit, ok := uploadLimits[bucket]
	return limit, ok
}
