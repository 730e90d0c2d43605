package entities

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

var roleDisplay = map[Role]string{
	RoleAdmin: "管理者",
	RoleUser:  "一般ユーザー",
}

func (r Role) Valid() bool {
	_, ok := roleDisplay[r]
	return ok
}

func (r Role) Label() string {
	if s, ok := roleDisplay[r]; ok {
		return s
	}
	return string(r)
}
