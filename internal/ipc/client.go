package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Rehearse.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// NewQuestion draws a fresh question from the active topic.
func (c *Client) NewQuestion() (*NewQuestionResponse, error) {
	var resp NewQuestionResponse
	if err := c.client.Call("Rehearse.NewQuestion", NewQuestionRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TopicList returns available topics and the active one.
func (c *Client) TopicList() (*TopicListResponse, error) {
	var resp TopicListResponse
	if err := c.client.Call("Rehearse.TopicList", TopicListRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetTopic switches the active interview topic.
func (c *Client) SetTopic(topic string) (*TopicResponse, error) {
	var resp TopicResponse
	if err := c.client.Call("Rehearse.SetTopic", TopicRequest{Topic: topic}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StartRecording begins recording the current question's answer.
func (c *Client) StartRecording() (*StartResponse, error) {
	var resp StartResponse
	if err := c.client.Call("Rehearse.StartRecording", StartRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StopRecording finalizes the active recording.
func (c *Client) StopRecording() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Rehearse.StopRecording", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Submit sends the stopped recording, or a file at path, for analysis.
func (c *Client) Submit(path string) (*SubmitResponse, error) {
	var resp SubmitResponse
	if err := c.client.Call("Rehearse.Submit", SubmitRequest{Path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reset abandons the current attempt.
func (c *Client) Reset() (*ResetResponse, error) {
	var resp ResetResponse
	if err := c.client.Call("Rehearse.Reset", ResetRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates an existing account.
func (c *Client) Login(email, password string) (*IdentityResponse, error) {
	var resp IdentityResponse
	if err := c.client.Call("Rehearse.Login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup registers a new account.
func (c *Client) Signup(name, email, password string) (*IdentityResponse, error) {
	var resp IdentityResponse
	if err := c.client.Call("Rehearse.Signup", SignupRequest{Name: name, Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout clears the cached identity.
func (c *Client) Logout() (*LogoutResponse, error) {
	var resp LogoutResponse
	if err := c.client.Call("Rehearse.Logout", LogoutRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WhoAmI returns the cached identity, nil when signed out.
func (c *Client) WhoAmI() (*IdentityResponse, error) {
	var resp IdentityResponse
	if err := c.client.Call("Rehearse.WhoAmI", WhoAmIRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats retrieves aggregate practice statistics.
func (c *Client) Stats() (*StatsResponse, error) {
	var resp StatsResponse
	if err := c.client.Call("Rehearse.Stats", StatsRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Sessions lists the user's practice history.
func (c *Client) Sessions() (*SessionsResponse, error) {
	var resp SessionsResponse
	if err := c.client.Call("Rehearse.Sessions", SessionsRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestNotification triggers a notification test via the daemon.
func (c *Client) TestNotification() (*TestNotificationResponse, error) {
	var resp TestNotificationResponse
	if err := c.client.Call("Rehearse.TestNotification", TestNotificationRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
