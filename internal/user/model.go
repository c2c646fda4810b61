package user

import "time"

// User 是 users 表的 GORM 模型。密码只存散列，任何输出都不回显。
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

// UserOutput 对外输出（只有 id 和用户名）。
type UserOutput struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func ToOutput(u *User) UserOutput {
	return UserOutput{ID: u.ID, Username: u.Username}
}
