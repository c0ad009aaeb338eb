package record

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/coursedesk/coursedesk/core"
)

// anonymousAuthor is used when a comment is created without an author.
const anonymousAuthor = "Anonymous"

const minPasswordLen = 8

type (
	// Store durably persists named collections. Load returns an empty
	// sequence when no storage exists yet and ErrStorageCorrupt when the
	// persisted form cannot be parsed. Save persists every given collection
	// as a single unit: either all of them are written or none is.
	// Individual calls are atomic, the gap between a Load and the Save that
	// follows it is not; Service serializes those cycles itself.
	Store interface {
		Load(ctx context.Context, collection string) ([]Record, error)
		Save(ctx context.Context, collections map[string][]Record) error
	}

	// Service implements the CRUD operations of one record kind on top of a
	// Store; all kinds share this logic, parametrized by their Schema.
	Service struct {
		schema  Schema
		store   Store
		mailSvc core.EmailService
		conf    *core.Config

		// mu serializes read-modify-write cycles against the store, so that
		// two concurrent writers cannot load the same snapshot and have the
		// second Save drop the first's changes. Reads go without it: a lone
		// Load is already atomic at the store level.
		mu sync.Mutex
	}
)

func NewService(conf *core.Config, schema Schema, store Store, mailSvc core.EmailService) *Service {
	return &Service{
		schema:  schema,
		store:   store,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func (svc *Service) Schema() Schema { return svc.schema }

// List returns the kind's records after applying search, then sort.
// Password hashes are never included.
func (svc *Service) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	records, err := svc.store.Load(ctx, svc.schema.Name)
	if err != nil {
		return nil, err
	}
	records = Search(svc.schema, records, opts.Search)
	records = Sort(svc.schema, records, opts.Sort, opts.Order)

	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = svc.sanitize(rec)
	}
	return out, nil
}

// Get returns the record with the given id.
func (svc *Service) Get(ctx context.Context, id string) (Record, error) {
	records, err := svc.store.Load(ctx, svc.schema.Name)
	if err != nil {
		return nil, err
	}
	_, rec := svc.findByID(records, id)
	if rec == nil {
		return nil, &NotFoundError{Singular: svc.schema.Singular}
	}
	return svc.sanitize(rec), nil
}

// Create validates `data` against the schema, assigns created_at (and the id
// for server-assigned kinds), hashes any password field and persists the new
// record.
func (svc *Service) Create(ctx context.Context, data Record) (Record, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	records, err := svc.store.Load(ctx, svc.schema.Name)
	if err != nil {
		return nil, err
	}

	rec := Record{}
	var fldErrs []core.FieldError
	for _, fld := range svc.schema.Fields {
		val, ok := svc.cleanValue(data, fld)
		if !ok {
			if fld.Required {
				fldErrs = append(fldErrs, core.FieldError{Field: fld.Name, Error: "this field is required"})
			}
			continue
		}
		if fErr := checkFormat(fld, val); fErr != nil {
			fldErrs = append(fldErrs, *fErr)
			continue
		}
		rec[fld.Name] = val
	}
	if fldErrs != nil {
		return nil, core.NewValidationError(fmt.Errorf("invalid %s data", svc.schema.Singular), fldErrs...)
	}

	for _, fld := range svc.schema.Fields {
		if !fld.Unique {
			continue
		}
		if err := svc.checkUniqueness(records, fld, rec.String(fld.Name), -1); err != nil {
			return nil, err
		}
	}

	if !svc.schema.NaturalKey {
		rec[svc.schema.IDField] = uuid.NewString()
	}
	if pwdFld := svc.schema.PasswordField(); pwdFld != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(rec.String(pwdFld)), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		rec[pwdFld] = string(hash)
	}
	rec[FieldCreatedAt] = Timestamp(time.Now())

	records = append(records, rec)
	if err := svc.store.Save(ctx, map[string][]Record{svc.schema.Name: records}); err != nil {
		return nil, err
	}
	return svc.sanitize(rec), nil
}

// Update applies a partial update to the record with the given id. Every
// provided field is validated before anything is written: if any one fails,
// the stored record is left unchanged. The id and password fields are not
// updatable here.
func (svc *Service) Update(ctx context.Context, id string, data Record) (Record, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	records, err := svc.store.Load(ctx, svc.schema.Name)
	if err != nil {
		return nil, err
	}
	idx, rec := svc.findByID(records, id)
	if rec == nil {
		return nil, &NotFoundError{Singular: svc.schema.Singular}
	}

	pending := rec.Clone()
	for _, fld := range svc.schema.Fields {
		if fld.Name == svc.schema.IDField || fld.Kind == Password {
			continue
		}
		val, ok := svc.cleanValue(data, fld)
		if !ok {
			continue
		}
		if fErr := checkFormat(fld, val); fErr != nil {
			return nil, core.NewValidationError(fmt.Errorf("invalid %s data", svc.schema.Singular), *fErr)
		}
		if fld.Unique {
			if err := svc.checkUniqueness(records, fld, fmt.Sprint(val), idx); err != nil {
				return nil, err
			}
		}
		pending[fld.Name] = val
	}

	records[idx] = pending
	if err := svc.store.Save(ctx, map[string][]Record{svc.schema.Name: records}); err != nil {
		return nil, err
	}
	return svc.sanitize(pending), nil
}

// Delete removes the record with the given id together with all its comments,
// as a single persisted unit.
func (svc *Service) Delete(ctx context.Context, id string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	records, err := svc.store.Load(ctx, svc.schema.Name)
	if err != nil {
		return err
	}
	idx, _ := svc.findByID(records, id)
	if idx < 0 {
		return &NotFoundError{Singular: svc.schema.Singular}
	}

	payload := map[string][]Record{
		svc.schema.Name: append(records[:idx:idx], records[idx+1:]...),
	}
	if svc.schema.HasComments() {
		comments, err := svc.store.Load(ctx, svc.schema.CommentsCollection())
		if err != nil {
			return err
		}
		kept := make([]Record, 0, len(comments))
		for _, c := range comments {
			if c.String(svc.schema.CommentFK) != id {
				kept = append(kept, c)
			}
		}
		payload[svc.schema.CommentsCollection()] = kept
	}
	return svc.store.Save(ctx, payload)
}

// ChangePassword verifies the current password and replaces the stored hash.
func (svc *Service) ChangePassword(ctx context.Context, id, currentPwd, newPwd string) error {
	pwdFld := svc.schema.PasswordField()
	if pwdFld == "" {
		return &NotFoundError{Singular: svc.schema.Singular}
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	records, err := svc.store.Load(ctx, svc.schema.Name)
	if err != nil {
		return err
	}
	idx, rec := svc.findByID(records, id)
	if rec == nil {
		return &NotFoundError{Singular: svc.schema.Singular}
	}
	if len(newPwd) < minPasswordLen {
		return core.NewValidationError(
			fmt.Errorf("new password must be at least %d characters long", minPasswordLen),
			core.FieldError{Field: "new_password", Error: fmt.Sprintf("must be at least %d characters long", minPasswordLen)},
		)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.String(pwdFld)), []byte(currentPwd)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	records[idx] = rec.Clone()
	records[idx][pwdFld] = string(hash)
	if err := svc.store.Save(ctx, map[string][]Record{svc.schema.Name: records}); err != nil {
		return err
	}

	svc.notifyPasswordChanged(records[idx])
	return nil
}

// SetPassword replaces the stored hash without verifying the current
// password; reserved for operator tooling.
func (svc *Service) SetPassword(ctx context.Context, id, newPwd string) error {
	pwdFld := svc.schema.PasswordField()
	if pwdFld == "" {
		return &NotFoundError{Singular: svc.schema.Singular}
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	records, err := svc.store.Load(ctx, svc.schema.Name)
	if err != nil {
		return err
	}
	idx, rec := svc.findByID(records, id)
	if rec == nil {
		return &NotFoundError{Singular: svc.schema.Singular}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	records[idx] = rec.Clone()
	records[idx][pwdFld] = string(hash)
	return svc.store.Save(ctx, map[string][]Record{svc.schema.Name: records})
}

// Authenticate resolves a record by email and verifies the password against
// the stored hash.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (Record, error) {
	emailFld := svc.schema.EmailField()
	pwdFld := svc.schema.PasswordField()
	if emailFld == "" || pwdFld == "" {
		return nil, ErrInvalidCredentials
	}

	records, err := svc.store.Load(ctx, svc.schema.Name)
	if err != nil {
		return nil, err
	}
	email = core.CleanString(email)
	for _, rec := range records {
		if !strings.EqualFold(rec.String(emailFld), email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(rec.String(pwdFld)), []byte(pwd)) != nil {
			break
		}
		return svc.sanitize(rec), nil
	}
	return nil, ErrInvalidCredentials
}

func (svc *Service) findByID(records []Record, id string) (int, Record) {
	for i, rec := range records {
		if rec.String(svc.schema.IDField) == id {
			return i, rec
		}
	}
	return -1, nil
}

func (svc *Service) checkUniqueness(records []Record, fld Field, val string, exclIdx int) error {
	for i, other := range records {
		if i == exclIdx {
			continue
		}
		existing := other.String(fld.Name)
		dup := existing == val
		if fld.Kind == Email {
			dup = strings.EqualFold(existing, val)
		}
		if dup {
			field := fld.Name
			if fld.Name == svc.schema.IDField && svc.schema.Name == Students.Name {
				field = "student_id"
			}
			return &ConflictError{Singular: svc.schema.Singular, Field: field}
		}
	}
	return nil
}

// cleanValue extracts and normalizes the submitted value for `fld`.
// Empty strings are treated as absent, matching the admin pages' semantics.
func (svc *Service) cleanValue(data Record, fld Field) (interface{}, bool) {
	raw, ok := data[fld.Name]
	if !ok {
		return nil, false
	}
	if fld.Kind == List {
		switch items := raw.(type) {
		case []string:
			return items, true
		case []interface{}:
			out := make([]string, 0, len(items))
			for _, item := range items {
				out = append(out, fmt.Sprint(item))
			}
			return out, true
		}
		return nil, false
	}

	s, ok := raw.(string)
	if !ok {
		s = Record(data).String(fld.Name)
	}
	if fld.Kind != Password {
		s = core.CleanString(s)
	}
	if s == "" {
		return nil, false
	}
	return s, true
}

func checkFormat(fld Field, val interface{}) *core.FieldError {
	s, _ := val.(string)
	switch fld.Kind {
	case Email:
		if !core.IsEmail(s) {
			return &core.FieldError{Field: fld.Name, Error: "invalid email format"}
		}
	case Date:
		if !core.IsDateOnly(s) {
			return &core.FieldError{Field: fld.Name, Error: "invalid date format, expected YYYY-MM-DD"}
		}
	case URL:
		if !core.IsURL(s) {
			return &core.FieldError{Field: fld.Name, Error: "invalid URL format"}
		}
	}
	return nil
}

// sanitize returns a copy safe to echo back: password hashes are stripped.
func (svc *Service) sanitize(rec Record) Record {
	cp := rec.Clone()
	if pwdFld := svc.schema.PasswordField(); pwdFld != "" {
		delete(cp, pwdFld)
	}
	return cp
}

func (svc *Service) notifyPasswordChanged(rec Record) {
	if svc.mailSvc == nil {
		return
	}
	emailFld := svc.schema.EmailField()
	if emailFld == "" || rec.String(emailFld) == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: rec.String("name"), Address: rec.String(emailFld)}},
		Subject: "Your password was changed",
		BodyStr: "Your " + svc.conf.AppName + " password was just changed. If this wasn't you, contact an administrator.",
	})
}
