package records

import (
	"bytes"

	"github.com/pkg/errors"
)

const (
	// MaxFieldLength is the maximum number of characters stored in a single record field.
	MaxFieldLength = 19

	// NumFields is the number of fields in a record.
	NumFields = 5
)

// Field is a record field bounded to MaxFieldLength characters.
type Field string

// NewField returns a field truncated to MaxFieldLength characters.
func NewField(s string) Field {
	if len(s) > MaxFieldLength {
		s = s[:MaxFieldLength]
	}
	return Field(s)
}

// Record is a single fixed-layout employee record.
type Record struct {
	Name     Field
	ID       Field
	Age      Field
	Position Field
	Salary   Field
}

// New returns a record with every field truncated to its bound.
func New(name, id, age, position, salary string) Record {
	return Record{
		Name:     NewField(name),
		ID:       NewField(id),
		Age:      NewField(age),
		Position: NewField(position),
		Salary:   NewField(salary),
	}
}

// IsZero reports whether the record is the tombstone marking a deleted slot.
// All fields are checked together because a single empty field may legally
// appear in a stored record.
func (r Record) IsZero() bool {
	return r == Record{}
}

// Marshal serializes the record as newline-terminated fields in fixed order.
// The format provides no escaping, a field containing a newline corrupts the
// fields following it.
func (r Record) Marshal() []byte {
	var buf bytes.Buffer
	for _, f := range r.fields() {
		buf.WriteString(string(f))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Unmarshal parses a serialized record. Every field must be present,
// non-empty and within MaxFieldLength, any violation fails the whole record.
func Unmarshal(p []byte) (Record, error) {
	var fields [NumFields]Field
	for i := range fields {
		nl := bytes.IndexByte(p, '\n')
		switch {
		case nl < 0:
			return Record{}, errors.Errorf("field %d is missing or unterminated", i)
		case nl == 0:
			return Record{}, errors.Errorf("field %d is empty", i)
		case nl > MaxFieldLength:
			return Record{}, errors.Errorf("field %d is too long, maximum: %d, actual: %d", i, MaxFieldLength, nl)
		}
		fields[i] = Field(p[:nl])
		p = p[nl+1:]
	}
	if len(p) > 0 {
		return Record{}, errors.Errorf("unexpected %d bytes after last field", len(p))
	}

	return Record{
		Name:     fields[0],
		ID:       fields[1],
		Age:      fields[2],
		Position: fields[3],
		Salary:   fields[4],
	}, nil
}

func (r Record) fields() [NumFields]Field {
	return [NumFields]Field{r.Name, r.ID, r.Age, r.Position, r.Salary}
}
