package verification

import (
	"context"
	"fmt"
	"math"

	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/domain/verification"
)

// FaceMatchThreshold is the Euclidean distance below which a descriptor
// pair counts as the same person. The comparison is strict: a distance
// exactly at the threshold is not a match.
const FaceMatchThreshold = 0.55

// FaceVerifier matches a live face descriptor against every enrolled
// employee and picks the nearest one under the threshold.
type FaceVerifier struct {
	employeeRepo employee.EmployeeRepository
}

func NewFaceVerifier(employeeRepo employee.EmployeeRepository) *FaceVerifier {
	return &FaceVerifier{employeeRepo: employeeRepo}
}

// Verify performs a 1:N search over enrolled descriptors. Candidates
// whose stored descriptor length differs from the probe are skipped,
// not errored: stale enrollments from an older embedding model must not
// take down the whole scan.
func (v *FaceVerifier) Verify(ctx context.Context, descriptor []float64) (verification.Match, error) {
	if len(descriptor) == 0 {
		return verification.Match{}, verification.ErrNoMatch
	}

	enrolled, err := v.employeeRepo.ListFaceEnrolled(ctx)
	if err != nil {
		return verification.Match{}, fmt.Errorf("failed to load enrolled faces: %w", err)
	}

	var (
		best         employee.Employee
		bestDistance = math.Inf(1)
		found        bool
	)
	for _, emp := range enrolled {
		if len(emp.FaceDescriptor) != len(descriptor) {
			continue
		}
		d := euclideanDistance(descriptor, emp.FaceDescriptor)
		if d < bestDistance {
			best = emp
			bestDistance = d
			found = true
		}
	}

	if !found || bestDistance >= FaceMatchThreshold {
		return verification.Match{}, verification.ErrNoMatch
	}

	return verification.Match{
		Employee:   best,
		Method:     verification.MethodFace,
		Confidence: (1 - bestDistance) * 100,
	}, nil
}

func euclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
