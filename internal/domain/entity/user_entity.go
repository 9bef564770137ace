package entity

// User is the aggregate root for the registration domain.
// Senha holds the bcrypt hash of the password, never the plaintext,
// and is excluded from every JSON representation.
type User struct {
	ID           int64  `json:"id"`
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	CPF          string `json:"cpf"`
	TipoCadastro string `json:"tipo_cadastro"`
	Senha        string `json:"-"`
}
