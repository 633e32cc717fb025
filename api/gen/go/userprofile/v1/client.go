package userprofilev1

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "/userprofile.v1.UserProfileService/"

// UserProfileServiceClient es el stub cliente del UserProfileService.
type UserProfileServiceClient interface {
	CreateUserProfile(ctx context.Context, in *CreateUserProfileRequest, opts ...grpc.CallOption) (*CreateUserProfileResponse, error)
	GetUserProfileInfo(ctx context.Context, in *GetUserProfileInfoRequest, opts ...grpc.CallOption) (*GetUserProfileInfoResponse, error)
	UpdateUserProfile(ctx context.Context, in *UpdateUserProfileRequest, opts ...grpc.CallOption) (*UpdateUserProfileResponse, error)
	CheckPhoneNumber(ctx context.Context, in *CheckPhoneNumberRequest, opts ...grpc.CallOption) (*CheckPhoneNumberResponse, error)
}

type userProfileServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewUserProfileServiceClient construye el stub sobre una conexión ya abierta.
func NewUserProfileServiceClient(cc grpc.ClientConnInterface) UserProfileServiceClient {
	return &userProfileServiceClient{cc: cc}
}

func (c *userProfileServiceClient) CreateUserProfile(ctx context.Context, in *CreateUserProfileRequest, opts ...grpc.CallOption) (*CreateUserProfileResponse, error) {
	out := new(CreateUserProfileResponse)
	if err := c.cc.Invoke(ctx, serviceName+"CreateUserProfile", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userProfileServiceClient) GetUserProfileInfo(ctx context.Context, in *GetUserProfileInfoRequest, opts ...grpc.CallOption) (*GetUserProfileInfoResponse, error) {
	out := new(GetUserProfileInfoResponse)
	if err := c.cc.Invoke(ctx, serviceName+"GetUserProfileInfo", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userProfileServiceClient) UpdateUserProfile(ctx context.Context, in *UpdateUserProfileRequest, opts ...grpc.CallOption) (*UpdateUserProfileResponse, error) {
	out := new(UpdateUserProfileResponse)
	if err := c.cc.Invoke(ctx, serviceName+"UpdateUserProfile", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userProfileServiceClient) CheckPhoneNumber(ctx context.Context, in *CheckPhoneNumberRequest, opts ...grpc.CallOption) (*CheckPhoneNumberResponse, error) {
	out := new(CheckPhoneNumberResponse)
	if err := c.cc.Invoke(ctx, serviceName+"CheckPhoneNumber", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
