package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingFrame UserState = "awaiting_frame" // Ожидание кадра с микроскопа
	StateProcessing    UserState = "processing"     // Поиск клеток
)

// User представляет оператора установки
type User struct {
	ID     int64               // Telegram User ID
	ChatID int64               // Telegram Chat ID
	State  UserState           // Текущее состояние пользователя
	Params DetectionParameters // Личные настройки детекции
}

// NewUser создаёт нового пользователя с начальным состоянием и заданными настройками
func NewUser(userID, chatID int64, params DetectionParameters) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
		Params: params,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}
