// Package remote implementa profile.Gateway sobre gRPC.
package remote

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	userprofilev1 "github.com/sp1ral-dev/veridian/api/gen/go/userprofile/v1"
	"github.com/sp1ral-dev/veridian/internal/observability/metrics"
	"github.com/sp1ral-dev/veridian/internal/profile"
)

// Client envuelve el stub generado del UserProfileService.
type Client struct {
	conn *grpc.ClientConn
	svc  userprofilev1.UserProfileServiceClient

	// callTimeout acota cada RPC además del deadline del request.
	callTimeout time.Duration
}

// Dial crea el cliente con defaults razonables (transporte inseguro:
// tráfico interno del mesh, TLS lo termina la infraestructura).
func Dial(target string, callTimeout time.Duration, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	if callTimeout <= 0 {
		callTimeout = 5 * time.Second
	}
	return &Client{conn: conn, svc: userprofilev1.NewUserProfileServiceClient(conn), callTimeout: callTimeout}, nil
}

// Close cierra la conexión subyacente.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.callTimeout)
}

func (c *Client) CreateProfile(ctx context.Context, userID string, seed profile.Seed) (*profile.Info, error) {
	ctx, cancel := c.withDeadline(ctx)
	defer cancel()

	resp, err := c.svc.CreateUserProfile(ctx, &userprofilev1.CreateUserProfileRequest{
		UserId:      userID,
		Username:    seed.Username,
		PhoneNumber: seed.PhoneNumber,
		DateOfBirth: seed.DateOfBirth,
		GenderId:    seed.GenderID,
		AvatarKey:   seed.AvatarKey,
	})
	metrics.ProfileCall("create_profile", err)
	if err != nil {
		return nil, mapRPCError(err)
	}
	return &profile.Info{Username: resp.Username, AvatarKey: resp.AvatarKey}, nil
}

func (c *Client) GetProfile(ctx context.Context, userID string) (*profile.Info, error) {
	ctx, cancel := c.withDeadline(ctx)
	defer cancel()

	resp, err := c.svc.GetUserProfileInfo(ctx, &userprofilev1.GetUserProfileInfoRequest{UserId: userID})
	metrics.ProfileCall("get_profile", err)
	if err != nil {
		return nil, mapRPCError(err)
	}
	return &profile.Info{
		Username:    resp.Username,
		AvatarKey:   resp.AvatarKey,
		PhoneNumber: resp.PhoneNumber,
		DateOfBirth: resp.DateOfBirth,
		GenderID:    resp.GenderId,
	}, nil
}

func (c *Client) UpdateProfile(ctx context.Context, userID string, seed profile.Seed) (*profile.UpdateResult, error) {
	ctx, cancel := c.withDeadline(ctx)
	defer cancel()

	resp, err := c.svc.UpdateUserProfile(ctx, &userprofilev1.UpdateUserProfileRequest{
		UserId:      userID,
		Username:    seed.Username,
		PhoneNumber: seed.PhoneNumber,
		DateOfBirth: seed.DateOfBirth,
		GenderId:    seed.GenderID,
		AvatarKey:   seed.AvatarKey,
	})
	metrics.ProfileCall("update_profile", err)
	if err != nil {
		return nil, mapRPCError(err)
	}
	return &profile.UpdateResult{
		Username:          resp.Username,
		AvatarKey:         resp.AvatarKey,
		PreviousAvatarKey: resp.PreviousAvatarKey,
	}, nil
}

func (c *Client) IsPhoneUnique(ctx context.Context, phone string) (bool, error) {
	ctx, cancel := c.withDeadline(ctx)
	defer cancel()

	resp, err := c.svc.CheckPhoneNumber(ctx, &userprofilev1.CheckPhoneNumberRequest{PhoneNumber: phone})
	metrics.ProfileCall("check_phone", err)
	if err != nil {
		return false, mapRPCError(err)
	}
	return resp.IsUnique, nil
}

// mapRPCError traduce status codes de gRPC a los sentinels del dominio.
func mapRPCError(err error) error {
	if st, ok := status.FromError(err); ok {
		if st.Code() == codes.NotFound {
			return profile.ErrNotFound
		}
	}
	return profile.ErrUnavailable
}
