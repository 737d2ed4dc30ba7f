// Package partplan computes multipart upload part sizing. It is pure: the
// same inputs always produce the same plan, and nothing here touches the
// network.
package partplan

import (
	"fmt"

	"github.com/forge-cloud/s3stream/content"
	"github.com/forge-cloud/s3stream/errors"
)

// S3 multipart limits.
const (
	// MinPartSize is the smallest part S3 accepts (5 MiB).
	MinPartSize uint64 = 5 * 1024 * 1024
	// MaxPartSize is the largest part S3 accepts (5 GiB).
	MaxPartSize uint64 = 1024 * MinPartSize
	// MaxObjectSize is the largest object S3 accepts (5 TiB).
	MaxObjectSize uint64 = 1024 * MaxPartSize
	// MaxPartCount is the most parts a single upload may have.
	MaxPartCount uint32 = 10000
)

// Plan is the result of part sizing: the size of each part and, when the
// object size is known, the total number of parts.
type Plan struct {
	PartSize uint64

	// Count is the expected part count; valid only when CountKnown is true.
	Count      uint32
	CountKnown bool
}

// Calc computes the part size and part count for the given object size and
// requested part size, either of which may be unknown.
//
// When only the object size is known, the part size is the smallest multiple
// of MinPartSize that keeps the part count within MaxPartCount, capped at
// the object size itself.
func Calc(objectSize, partSize content.Size) (Plan, error) {
	if partSize.IsKnown() {
		if v := partSize.Value(); v < MinPartSize || v > MaxPartSize {
			return Plan{}, errors.NewError("calcPartInfo", errors.ErrInvalidPartSize).
				WithMessage(fmt.Sprintf("part size %d must be between %d and %d", v, MinPartSize, MaxPartSize))
		}
	}
	if objectSize.IsKnown() && objectSize.Value() > MaxObjectSize {
		return Plan{}, errors.NewError("calcPartInfo", errors.ErrInvalidObjectSize).
			WithMessage(fmt.Sprintf("object size %d exceeds maximum %d", objectSize.Value(), MaxObjectSize))
	}

	switch {
	case !objectSize.IsKnown() && !partSize.IsKnown():
		return Plan{}, errors.NewError("calcPartInfo", errors.ErrMissingPartSize)

	case !objectSize.IsKnown():
		return Plan{PartSize: partSize.Value()}, nil

	case !partSize.IsKnown():
		o := objectSize.Value()
		psize := ceilDiv(o, uint64(MaxPartCount))
		psize = MinPartSize * ceilDiv(psize, MinPartSize)
		if psize > o {
			psize = o
		}
		count := uint32(1)
		if psize > 0 {
			count = uint32(ceilDiv(o, psize))
		}
		return Plan{PartSize: psize, Count: count, CountKnown: true}, nil

	default:
		o, p := objectSize.Value(), partSize.Value()
		count := ceilDiv(o, p)
		if count == 0 || count > uint64(MaxPartCount) {
			return Plan{}, errors.NewError("calcPartInfo", errors.ErrInvalidPartCount).
				WithMessage(fmt.Sprintf("object size %d with part size %d needs %d parts", o, p, count))
		}
		return Plan{PartSize: p, Count: uint32(count), CountKnown: true}, nil
	}
}

// ceilDiv is integer ceiling division, exact for the full uint64 range.
func ceilDiv(a, b uint64) uint64 {
	if a == 0 {
		return 0
	}
	return (a-1)/b + 1
}
