package xmlrec

import (
	"errors"
	"fmt"
)

// ErrStructuralAmbiguity is matched by every StructuralAmbiguityError.
var ErrStructuralAmbiguity = errors.New("structural ambiguity")

// StructuralAmbiguityError is returned when a tag that must be unique within
// a scope occurs more than once. The file it came from cannot be trusted.
type StructuralAmbiguityError struct {
	Tag   string
	Count int
}

func (e *StructuralAmbiguityError) Error() string {
	return fmt.Sprintf("structural ambiguity: %d <%s> elements found", e.Count, e.Tag)
}

func (e *StructuralAmbiguityError) Is(target error) bool {
	return target == ErrStructuralAmbiguity
}
