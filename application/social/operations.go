package social

import (
	"context"

	"fbclone-backend/application/auth"
	"fbclone-backend/application/gate"
	"fbclone-backend/application/views"
	"fbclone-backend/domain/social"
)

// Argument bundles for multi-argument operations.

type FriendStatusArgs struct {
	TargetID string
	Desired  bool
}

type LikeStatusArgs struct {
	ContentID string
	Desired   bool
}

type MakePostArgs struct {
	Message string
	Images  []social.Image
}

type MakeReplyArgs struct {
	ReplyTo string
	Message string
}

type MakeAccountArgs struct {
	Handle  string
	Name    string
	Avatar  social.Image
	PreHash string
}

type LoginArgs struct {
	AccountID string
	PreHash   string
}

// Operations is the full set of gated operations the transport exposes.
// Each entry carries its failure default: nil views for lookups, false for
// boolean mutations, empty token for login. Account creation, login and
// logout bypass identity resolution.
type Operations struct {
	MyProfile    *gate.Op[struct{}, *views.User]
	LookupUser   *gate.Op[string, *views.User]
	LookupHandle *gate.Op[string, *views.User]
	LookupPost   *gate.Op[string, *views.Post]
	LookupReply  *gate.Op[string, *views.Reply]
	Feed         *gate.Op[int, []*views.Post]

	SetFriendStatus *gate.Op[FriendStatusArgs, bool]
	SetLikeStatus   *gate.Op[LikeStatusArgs, bool]
	MakePost        *gate.Op[MakePostArgs, *views.Post]
	MakeReply       *gate.Op[MakeReplyArgs, *views.Reply]
	SetPrivacy      *gate.Op[bool, bool]
	SetPassword     *gate.Op[string, bool]

	MakeAccount *gate.Op[MakeAccountArgs, *views.User]
	Login       *gate.Op[LoginArgs, string]
	Logout      *gate.Op[string, bool]
}

// NewOperations registers every operation with the gate.
func NewOperations(g *gate.Gate, svc *Service) *Operations {
	return &Operations{
		MyProfile: gate.Register(g, "myProfile", (*views.User)(nil),
			func(ctx context.Context, ident auth.Identity, _ struct{}) (*views.User, error) {
				return svc.MyProfile(ctx, ident)
			}, gate.RequireUser()),

		LookupUser: gate.Register(g, "lookupUserId", (*views.User)(nil),
			func(ctx context.Context, ident auth.Identity, id string) (*views.User, error) {
				return svc.LookupUserByID(ctx, ident, id)
			}),

		LookupHandle: gate.Register(g, "lookupUsername", (*views.User)(nil),
			func(ctx context.Context, ident auth.Identity, handle string) (*views.User, error) {
				return svc.LookupUserByHandle(ctx, ident, handle)
			}),

		LookupPost: gate.Register(g, "lookupPostId", (*views.Post)(nil),
			func(ctx context.Context, ident auth.Identity, id string) (*views.Post, error) {
				return svc.LookupPostByID(ctx, ident, id)
			}),

		LookupReply: gate.Register(g, "lookupReplyId", (*views.Reply)(nil),
			func(ctx context.Context, ident auth.Identity, id string) (*views.Reply, error) {
				return svc.LookupReplyByID(ctx, ident, id)
			}),

		Feed: gate.Register(g, "feed", []*views.Post{},
			func(ctx context.Context, ident auth.Identity, page int) ([]*views.Post, error) {
				return svc.Feed(ctx, ident, page)
			}),

		SetFriendStatus: gate.Register(g, "setFriendStatus", false,
			func(ctx context.Context, ident auth.Identity, args FriendStatusArgs) (bool, error) {
				return svc.SetFriendStatus(ctx, ident, args.TargetID, args.Desired)
			}, gate.RequireUser()),

		SetLikeStatus: gate.Register(g, "setLike", false,
			func(ctx context.Context, ident auth.Identity, args LikeStatusArgs) (bool, error) {
				return svc.SetLikeStatus(ctx, ident, args.ContentID, args.Desired)
			}, gate.RequireUser()),

		MakePost: gate.Register(g, "makePost", (*views.Post)(nil),
			func(ctx context.Context, ident auth.Identity, args MakePostArgs) (*views.Post, error) {
				return svc.MakePost(ctx, ident, args.Message, args.Images)
			}, gate.RequireUser()),

		MakeReply: gate.Register(g, "makeReply", (*views.Reply)(nil),
			func(ctx context.Context, ident auth.Identity, args MakeReplyArgs) (*views.Reply, error) {
				return svc.MakeReply(ctx, ident, args.ReplyTo, args.Message)
			}, gate.RequireUser()),

		SetPrivacy: gate.Register(g, "setAcctPrivacy", false,
			func(ctx context.Context, ident auth.Identity, friendOnly bool) (bool, error) {
				return svc.SetPrivacy(ctx, ident, friendOnly)
			}, gate.RequireUser()),

		SetPassword: gate.Register(g, "setAcctPassword", false,
			func(ctx context.Context, ident auth.Identity, preHash string) (bool, error) {
				return svc.SetPassword(ctx, ident, preHash)
			}, gate.RequireUser()),

		MakeAccount: gate.Register(g, "makeAcct", (*views.User)(nil),
			func(ctx context.Context, _ auth.Identity, args MakeAccountArgs) (*views.User, error) {
				return svc.MakeAccount(ctx, args.Handle, args.Name, args.Avatar, args.PreHash)
			}, gate.Bypass()),

		Login: gate.Register(g, "login", "",
			func(ctx context.Context, _ auth.Identity, args LoginArgs) (string, error) {
				return svc.Login(ctx, args.AccountID, args.PreHash)
			}, gate.Bypass()),

		Logout: gate.Register(g, "clearTok", false,
			func(ctx context.Context, _ auth.Identity, token string) (bool, error) {
				return svc.Logout(ctx, token)
			}, gate.Bypass()),
	}
}
