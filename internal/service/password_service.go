package service

// Credential is the stored side of a password check.
type Credential interface {
	GetAlgo() string
	GetHash() []byte
	GetSalt() []byte
	GetParamsJSON() []byte
	GetPasswordVer() int
}

type PasswordHash struct {
	Algo   string
	Hash   []byte
	Salt   []byte
	Params []byte
	Ver    int
}

type PasswordService interface {
	Hash(password string) (PasswordHash, error)
	Verify(password string, cred Credential) (rehashNeeded bool, ok bool)
}
