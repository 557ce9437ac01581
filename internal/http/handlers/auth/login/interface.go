package login

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(username, password string) (string, error)
}
