package domain

// ActorContext идентичность уже аутентифицированного инициатора операции
// Передается явно в каждую операцию движка вместо чтения из сессии
type ActorContext struct {
	UserID  int64
	IsStaff bool
}

// Owns returns true if the actor is the owner identified by userID
func (a ActorContext) Owns(userID int64) bool {
	return a.UserID == userID
}
