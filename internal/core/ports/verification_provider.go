package ports

import "context"

// IdentityDocument is what a mover submits for vetting.
type IdentityDocument struct {
	FullName       string
	DocumentType   string
	DocumentNumber string
	Country        string
}

// VerificationProvider checks identity documents and runs background checks.
// Results are plain booleans; the core only records them.
type VerificationProvider interface {
	VerifyIdentity(ctx context.Context, doc IdentityDocument) (bool, error)
	SubmitBackgroundCheck(ctx context.Context, doc IdentityDocument) (bool, error)
}
