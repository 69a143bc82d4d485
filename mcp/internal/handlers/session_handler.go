package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/foodhub/foodhub-client/client"
	"github.com/foodhub/foodhub-client/session"
)

// SessionHandler exposes sign-up, sign-in and the session snapshot.
type SessionHandler struct {
	store *session.Store
}

func NewSessionHandler(s *session.Store) *SessionHandler { return &SessionHandler{store: s} }

func (sh *SessionHandler) RegisterTools(s *server.MCPServer) error {
	register := mcp.NewTool("register",
		mcp.WithDescription("Create an account and sign in with it; no-op when already signed in"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Full name")),
		mcp.WithString("email", mcp.Required(), mcp.Description("Account email")),
		mcp.WithString("password", mcp.Required(), mcp.Description("Account password")),
		mcp.WithString("phone", mcp.Description("Phone number")),
		mcp.WithString("location", mcp.Description("Address")),
		mcp.WithBoolean("owner", mcp.Description("Register as a restaurant owner")),
	)
	signIn := mcp.NewTool("sign_in",
		mcp.WithDescription("Sign in; later tools act as this user"),
		mcp.WithString("email", mcp.Required(), mcp.Description("Account email")),
		mcp.WithString("password", mcp.Required(), mcp.Description("Account password")),
	)
	logout := mcp.NewTool("logout",
		mcp.WithDescription("Forget the signed-in user"),
	)
	state := mcp.NewTool("session_state",
		mcp.WithDescription("Show the signed-in user, the last error and whether a request is running"),
	)

	s.AddTool(register, sh.handleRegister)
	s.AddTool(signIn, sh.handleSignIn)
	s.AddTool(logout, sh.handleLogout)
	s.AddTool(state, sh.handleState)
	return nil
}

type stateView struct {
	SignedIn     bool               `json:"signedIn"`
	User         *client.User       `json:"user,omitempty"`
	TokenPresent bool               `json:"tokenPresent"`
	Loading      bool               `json:"loading"`
	Error        client.ErrorDetail `json:"error,omitempty"`
}

func view(st session.State) stateView {
	return stateView{
		SignedIn:     st.SignedIn(),
		User:         st.User,
		TokenPresent: st.AuthToken != "",
		Loading:      st.Loading,
		Error:        st.Error,
	}
}

// compositeResult reports the state a composite operation left behind.
func compositeResult(op string, st session.State) (*mcp.CallToolResult, error) {
	if st.Error != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %s", op, st.Error.Message())), nil
	}
	return jsonResult(view(st))
}

func (sh *SessionHandler) handleRegister(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, _ := req.RequireString("name")
	email, _ := req.RequireString("email")
	password, _ := req.RequireString("password")
	u := client.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Phone:    stringArg(req, "phone"),
		Location: stringArg(req, "location"),
	}
	if owner, ok := req.GetArguments()["owner"].(bool); ok && owner {
		u.Role = client.RoleOwner
	}

	log.Debug().Str("email", email).Msg("register invoked")

	start := time.Now()
	if err := sh.store.CreateUser(ctx, u); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("register rejected: %v", err)), nil
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("register finished")
	return compositeResult("register", sh.store.State())
}

func (sh *SessionHandler) handleSignIn(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, _ := req.RequireString("email")
	password, _ := req.RequireString("password")

	log.Debug().Str("email", email).Msg("sign_in invoked")

	if err := sh.store.SignIn(ctx, client.Credentials{Email: email, Password: password}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sign in rejected: %v", err)), nil
	}
	return compositeResult("sign in", sh.store.State())
}

func (sh *SessionHandler) handleLogout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sh.store.Logout()
	return jsonResult(view(sh.store.State()))
}

func (sh *SessionHandler) handleState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(view(sh.store.State()))
}
