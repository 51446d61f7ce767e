package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"log/slog"

	"rehearse/internal/daemon"
	"rehearse/internal/logging"
	"rehearse/internal/questions"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("Rehearse", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check socket permissions and restart the daemon if needed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the socket file manually or rerun rehearse daemon stop"))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status(s.ctx)
	resp.Running = status.Running
	resp.PID = status.PID
	resp.LockPath = status.LockPath
	resp.Interview = status.Interview
	resp.Identity = status.Identity
	resp.Checks = append(resp.Checks, status.Checks...)
	return nil
}

func (s *service) NewQuestion(_ NewQuestionRequest, resp *NewQuestionResponse) error {
	question, err := s.daemon.Controller().NewQuestion(s.ctx)
	if err != nil {
		return err
	}
	resp.Question = question
	return nil
}

func (s *service) TopicList(_ TopicListRequest, resp *TopicListResponse) error {
	resp.Topics = questions.Topics()
	resp.Active = s.daemon.Controller().Topic().Key
	return nil
}

func (s *service) SetTopic(req TopicRequest, resp *TopicResponse) error {
	topic, err := s.daemon.Controller().SetTopic(req.Topic)
	if err != nil {
		return err
	}
	resp.Key = topic.Key
	resp.Label = topic.Label
	return nil
}

func (s *service) StartRecording(_ StartRequest, resp *StartResponse) error {
	controller := s.daemon.Controller()
	if err := controller.StartRecording(s.ctx); err != nil {
		return err
	}
	status := controller.Status()
	resp.Device = status.Device
	if status.Question != nil {
		resp.Question = status.Question.Text
	}
	s.log().Info("recording started via IPC")
	return nil
}

func (s *service) StopRecording(_ StopRequest, resp *StopResponse) error {
	controller := s.daemon.Controller()
	result, err := controller.StopRecording(s.ctx)
	resp.State = string(controller.Status().State)
	if err != nil {
		return err
	}
	resp.Result = result
	resp.Submitted = result != nil
	return nil
}

func (s *service) Submit(req SubmitRequest, resp *SubmitResponse) error {
	controller := s.daemon.Controller()
	var err error
	if req.Path != "" {
		resp.Result, err = controller.SubmitFile(s.ctx, req.Path)
	} else {
		resp.Result, err = controller.Submit(s.ctx)
	}
	return err
}

func (s *service) Reset(_ ResetRequest, resp *ResetResponse) error {
	controller := s.daemon.Controller()
	controller.Reset()
	resp.State = string(controller.Status().State)
	s.log().Info("attempt reset via IPC")
	return nil
}

func (s *service) Login(req LoginRequest, resp *IdentityResponse) error {
	ident, err := s.daemon.Login(s.ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	resp.Identity = ident
	return nil
}

func (s *service) Signup(req SignupRequest, resp *IdentityResponse) error {
	ident, err := s.daemon.Signup(s.ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	resp.Identity = ident
	return nil
}

func (s *service) Logout(_ LogoutRequest, resp *LogoutResponse) error {
	if err := s.daemon.Logout(); err != nil {
		return err
	}
	resp.LoggedOut = true
	return nil
}

func (s *service) WhoAmI(_ WhoAmIRequest, resp *IdentityResponse) error {
	ident, err := s.daemon.WhoAmI()
	if err != nil {
		return err
	}
	resp.Identity = ident
	return nil
}

func (s *service) Stats(_ StatsRequest, resp *StatsResponse) error {
	resp.Stats = s.daemon.Controller().Stats(s.ctx)
	return nil
}

func (s *service) Sessions(_ SessionsRequest, resp *SessionsResponse) error {
	sessions, err := s.daemon.Controller().Sessions(s.ctx)
	if err != nil {
		return err
	}
	resp.Sessions = sessions
	return nil
}

func (s *service) TestNotification(_ TestNotificationRequest, resp *TestNotificationResponse) error {
	sent, message, err := s.daemon.TestNotification(s.ctx)
	resp.Sent = sent
	resp.Message = message
	return err
}
