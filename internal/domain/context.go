package domain

import (
	"context"
	"fmt"
)

const CtxUserInfo = "userInfo"

const (
	CtxSystemUserId  = "_ARGUS_SYSTEM_"
	CtxUnknownUserId = "_ARGUS_UNKNOWN_"
)

// ContextUserInfo identifies the account on whose behalf a request is
// executed. It is used to stamp CreatedBy/UpdatedBy columns and the actor
// field of activity entries.
type ContextUserInfo struct {
	Id      string
	IsAdmin bool
}

func (u *ContextUserInfo) String() string {
	return fmt.Sprintf("%s|%t", u.Id, u.IsAdmin)
}

func (u *ContextUserInfo) UserId() string {
	return u.Id
}

func DefaultContextUserInfo() *ContextUserInfo {
	return &ContextUserInfo{
		Id:      CtxUnknownUserId,
		IsAdmin: false,
	}
}

// SystemUserInfo is used for actions that are triggered by the application
// itself, for example background jobs or CLI commands.
func SystemUserInfo() *ContextUserInfo {
	return &ContextUserInfo{
		Id:      CtxSystemUserId,
		IsAdmin: true,
	}
}

func SetUserInfo(ctx context.Context, info *ContextUserInfo) context.Context {
	ctx = context.WithValue(ctx, CtxUserInfo, info)
	return ctx
}

func GetUserInfo(ctx context.Context) *ContextUserInfo {
	rawInfo := ctx.Value(CtxUserInfo)
	if rawInfo == nil {
		return DefaultContextUserInfo()
	}

	if info, ok := rawInfo.(*ContextUserInfo); ok {
		return info
	}

	return DefaultContextUserInfo()
}
