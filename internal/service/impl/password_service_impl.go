package impl

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"

	"truefeedback/internal/service"

	"golang.org/x/crypto/argon2"
)

const algoArgon2id = "argon2id"

// Argon2Params is stored next to each hash so verification uses the cost the
// hash was made with.
type Argon2Params struct {
	Time    uint32 `json:"t"`
	Memory  uint32 `json:"m"` // KiB
	Threads uint8  `json:"p"`
	KeyLen  uint32 `json:"k"`
	SaltLen uint32 `json:"s"`
}

func DefaultArgon2Params() Argon2Params {
	return Argon2Params{Time: 3, Memory: 64 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}
}

type PasswordServiceImpl struct {
	version int // bump when the policy changes
	params  Argon2Params
}

func NewPasswordServiceArgon2id(version int, params Argon2Params) *PasswordServiceImpl {
	if version <= 0 {
		version = 1
	}
	return &PasswordServiceImpl{version: version, params: params}
}

func (p *PasswordServiceImpl) Hash(password string) (service.PasswordHash, error) {
	if password == "" {
		return service.PasswordHash{}, ErrEmptyPassword
	}
	salt := make([]byte, p.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return service.PasswordHash{}, err
	}
	paramsJSON, err := json.Marshal(p.params)
	if err != nil {
		return service.PasswordHash{}, err
	}
	return service.PasswordHash{
		Algo:   algoArgon2id,
		Hash:   argon2.IDKey([]byte(password), salt, p.params.Time, p.params.Memory, p.params.Threads, p.params.KeyLen),
		Salt:   salt,
		Params: paramsJSON,
		Ver:    p.version,
	}, nil
}

func (p *PasswordServiceImpl) Verify(password string, cred service.Credential) (rehashNeeded bool, ok bool) {
	if cred.GetAlgo() != algoArgon2id {
		return false, false
	}
	var stored Argon2Params
	if err := json.Unmarshal(cred.GetParamsJSON(), &stored); err != nil || stored.KeyLen == 0 {
		return false, false
	}
	calculated := argon2.IDKey([]byte(password), cred.GetSalt(), stored.Time, stored.Memory, stored.Threads, stored.KeyLen)
	if subtle.ConstantTimeCompare(calculated, cred.GetHash()) != 1 {
		return false, false
	}
	return cred.GetPasswordVer() != p.version || stored != p.params, true
}
