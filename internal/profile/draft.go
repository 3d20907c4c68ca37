package profile

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	ProofSlots     = 8
	ThumbnailSlots = 3
)

type Field string

const (
	FieldFullName        Field = "fullName"
	FieldSkill           Field = "skill"
	FieldSkillLearn      Field = "skillLearn"
	FieldGender          Field = "gender"
	FieldYearsExperience Field = "yearsExperience"
	FieldLocation        Field = "locationAddress"
)

// RequiredFields lists the scalar fields that must be non-empty before a save.
var RequiredFields = []Field{
	FieldFullName,
	FieldSkill,
	FieldSkillLearn,
	FieldGender,
	FieldYearsExperience,
}

var (
	ErrUnknownField     = errors.New("unknown profile field")
	ErrIndexOutOfRange  = errors.New("media slot index out of range")
	ErrValidationFailed = errors.New("profile validation failed")
	ErrNotDirty         = errors.New("no unsaved changes")
)

// ValidationError reports which save requirements are unmet.
type ValidationError struct {
	Fields  []Field
	NoProof bool
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Fields) > 0 {
		names := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			names[i] = string(f)
		}
		parts = append(parts, "missing "+strings.Join(names, ", "))
	}
	if e.NoProof {
		parts = append(parts, "no proof of work")
	}
	return fmt.Sprintf("%v: %s", ErrValidationFailed, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// Profile is the persisted shape of a user's own profile. Empty strings are empty slots.
type Profile struct {
	FullName        string `json:"fullName" validate:"required"`
	Skill           string `json:"skill" validate:"required"`
	SkillLearn      string `json:"skillLearn" validate:"required"`
	Gender          string `json:"gender" validate:"required"`
	YearsExperience string `json:"yearsExperience" validate:"required"`
	LocationAddress string `json:"locationAddress"`

	IntroVideo string
	Thumbnails []string
	Proofs     [ProofSlots]string
}

// HasProof reports whether at least one proof-of-work slot is filled.
func (p Profile) HasProof() bool {
	for _, uri := range p.Proofs {
		if uri != "" {
			return true
		}
	}
	return false
}

var validate = newValidator()

var validateProfile = func(p Profile) error {
	return validate.Struct(p)
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Draft is the editable, not yet persisted state of a profile.
type Draft struct {
	profile Profile
	dirty   bool
}

func New() *Draft {
	return &Draft{}
}

// Load starts a clean draft from an existing profile.
func Load(p Profile) *Draft {
	d := &Draft{profile: p}
	d.profile.Thumbnails = append([]string(nil), p.Thumbnails...)
	return d
}

func (d *Draft) Dirty() bool {
	return d.dirty
}

// Snapshot returns a copy of the current values, safe to hand to a persistence layer.
func (d *Draft) Snapshot() Profile {
	p := d.profile
	p.Thumbnails = append([]string(nil), d.profile.Thumbnails...)
	return p
}

func (d *Draft) fieldPtr(f Field) (*string, error) {
	switch f {
	case FieldFullName:
		return &d.profile.FullName, nil
	case FieldSkill:
		return &d.profile.Skill, nil
	case FieldSkillLearn:
		return &d.profile.SkillLearn, nil
	case FieldGender:
		return &d.profile.Gender, nil
	case FieldYearsExperience:
		return &d.profile.YearsExperience, nil
	case FieldLocation:
		return &d.profile.LocationAddress, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, f)
}

func (d *Draft) Field(f Field) string {
	ptr, err := d.fieldPtr(f)
	if err != nil {
		return ""
	}
	return *ptr
}

// SetField updates an editable scalar field. The location is not user editable.
func (d *Draft) SetField(f Field, value string) error {
	if f == FieldLocation {
		return fmt.Errorf("%w: %q is read-only", ErrUnknownField, f)
	}
	ptr, err := d.fieldPtr(f)
	if err != nil {
		return err
	}
	*ptr = value
	d.dirty = true
	return nil
}

// SetLocation stores the externally resolved address without marking the draft dirty.
func (d *Draft) SetLocation(addr string) {
	d.profile.LocationAddress = addr
}

func (d *Draft) SetIntroVideo(uri string) {
	d.profile.IntroVideo = uri
	d.dirty = true
}

// SetThumbnail replaces slot i, or appends when i is the next free slot.
func (d *Draft) SetThumbnail(i int, uri string) error {
	n := len(d.profile.Thumbnails)
	if i < 0 || i > n || i >= ThumbnailSlots {
		return fmt.Errorf("%w: thumbnail %d (have %d of %d)", ErrIndexOutOfRange, i, n, ThumbnailSlots)
	}
	if i == n {
		d.profile.Thumbnails = append(d.profile.Thumbnails, uri)
	} else {
		d.profile.Thumbnails[i] = uri
	}
	d.dirty = true
	return nil
}

func (d *Draft) SetProof(i int, uri string) error {
	if i < 0 || i >= ProofSlots {
		return fmt.Errorf("%w: proof %d (0-%d)", ErrIndexOutOfRange, i, ProofSlots-1)
	}
	d.profile.Proofs[i] = uri
	d.dirty = true
	return nil
}

// Missing returns the unmet save requirements, or nil when the draft can be saved.
func (d *Draft) Missing() *ValidationError {
	var verr ValidationError

	if err := validateProfile(d.profile); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				verr.Fields = append(verr.Fields, Field(fe.Field()))
			}
		} else {
			log.Printf("profile validation error, treating every required field as missing: %v", err)
			verr.Fields = append(verr.Fields, RequiredFields...)
		}
	}
	verr.NoProof = !d.profile.HasProof()

	if len(verr.Fields) == 0 && !verr.NoProof {
		return nil
	}
	return &verr
}

func (d *Draft) CanSave() bool {
	return d.Missing() == nil
}

// Save closes the edit session when the draft is valid. The caller persists Snapshot().
func (d *Draft) Save() error {
	if !d.dirty {
		return ErrNotDirty
	}
	if verr := d.Missing(); verr != nil {
		return verr
	}
	d.dirty = false
	return nil
}
