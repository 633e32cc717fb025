// Package userprofilev1 contiene los bindings Go del contrato
// userprofile.v1 (api/proto/userprofile/v1/user_profile.proto).
//
// Los mensajes se mantienen a mano y derivan su descriptor de los tags
// protobuf, así el repo no arrastra la toolchain de protoc. Cualquier
// cambio en el .proto tiene que reflejarse acá campo por campo.
package userprofilev1

import (
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/protoadapt"
)

func msgString(m protoadapt.MessageV1) string {
	return prototext.Format(protoadapt.MessageV2Of(m))
}

type CreateUserProfileRequest struct {
	UserId      string `protobuf:"bytes,1,opt,name=user_id,json=userId,proto3" json:"user_id,omitempty"`
	Username    string `protobuf:"bytes,2,opt,name=username,proto3" json:"username,omitempty"`
	PhoneNumber string `protobuf:"bytes,3,opt,name=phone_number,json=phoneNumber,proto3" json:"phone_number,omitempty"`
	DateOfBirth string `protobuf:"bytes,4,opt,name=date_of_birth,json=dateOfBirth,proto3" json:"date_of_birth,omitempty"`
	GenderId    int64  `protobuf:"varint,5,opt,name=gender_id,json=genderId,proto3" json:"gender_id,omitempty"`
	AvatarKey   string `protobuf:"bytes,6,opt,name=avatar_key,json=avatarKey,proto3" json:"avatar_key,omitempty"`
}

func (m *CreateUserProfileRequest) Reset()         { *m = CreateUserProfileRequest{} }
func (m *CreateUserProfileRequest) String() string { return msgString(m) }
func (*CreateUserProfileRequest) ProtoMessage()    {}

type CreateUserProfileResponse struct {
	Username  string `protobuf:"bytes,1,opt,name=username,proto3" json:"username,omitempty"`
	AvatarKey string `protobuf:"bytes,2,opt,name=avatar_key,json=avatarKey,proto3" json:"avatar_key,omitempty"`
}

func (m *CreateUserProfileResponse) Reset()         { *m = CreateUserProfileResponse{} }
func (m *CreateUserProfileResponse) String() string { return msgString(m) }
func (*CreateUserProfileResponse) ProtoMessage()    {}

type GetUserProfileInfoRequest struct {
	UserId string `protobuf:"bytes,1,opt,name=user_id,json=userId,proto3" json:"user_id,omitempty"`
}

func (m *GetUserProfileInfoRequest) Reset()         { *m = GetUserProfileInfoRequest{} }
func (m *GetUserProfileInfoRequest) String() string { return msgString(m) }
func (*GetUserProfileInfoRequest) ProtoMessage()    {}

type GetUserProfileInfoResponse struct {
	Username    string `protobuf:"bytes,1,opt,name=username,proto3" json:"username,omitempty"`
	AvatarKey   string `protobuf:"bytes,2,opt,name=avatar_key,json=avatarKey,proto3" json:"avatar_key,omitempty"`
	PhoneNumber string `protobuf:"bytes,3,opt,name=phone_number,json=phoneNumber,proto3" json:"phone_number,omitempty"`
	DateOfBirth string `protobuf:"bytes,4,opt,name=date_of_birth,json=dateOfBirth,proto3" json:"date_of_birth,omitempty"`
	GenderId    int64  `protobuf:"varint,5,opt,name=gender_id,json=genderId,proto3" json:"gender_id,omitempty"`
}

func (m *GetUserProfileInfoResponse) Reset()         { *m = GetUserProfileInfoResponse{} }
func (m *GetUserProfileInfoResponse) String() string { return msgString(m) }
func (*GetUserProfileInfoResponse) ProtoMessage()    {}

type UpdateUserProfileRequest struct {
	UserId      string `protobuf:"bytes,1,opt,name=user_id,json=userId,proto3" json:"user_id,omitempty"`
	Username    string `protobuf:"bytes,2,opt,name=username,proto3" json:"username,omitempty"`
	PhoneNumber string `protobuf:"bytes,3,opt,name=phone_number,json=phoneNumber,proto3" json:"phone_number,omitempty"`
	DateOfBirth string `protobuf:"bytes,4,opt,name=date_of_birth,json=dateOfBirth,proto3" json:"date_of_birth,omitempty"`
	GenderId    int64  `protobuf:"varint,5,opt,name=gender_id,json=genderId,proto3" json:"gender_id,omitempty"`
	AvatarKey   string `protobuf:"bytes,6,opt,name=avatar_key,json=avatarKey,proto3" json:"avatar_key,omitempty"`
}

func (m *UpdateUserProfileRequest) Reset()         { *m = UpdateUserProfileRequest{} }
func (m *UpdateUserProfileRequest) String() string { return msgString(m) }
func (*UpdateUserProfileRequest) ProtoMessage()    {}

type UpdateUserProfileResponse struct {
	Username  string `protobuf:"bytes,1,opt,name=username,proto3" json:"username,omitempty"`
	AvatarKey string `protobuf:"bytes,2,opt,name=avatar_key,json=avatarKey,proto3" json:"avatar_key,omitempty"`
	// Clave anterior del avatar si el update la reemplazó; vacío si no cambió.
	PreviousAvatarKey string `protobuf:"bytes,3,opt,name=previous_avatar_key,json=previousAvatarKey,proto3" json:"previous_avatar_key,omitempty"`
}

func (m *UpdateUserProfileResponse) Reset()         { *m = UpdateUserProfileResponse{} }
func (m *UpdateUserProfileResponse) String() string { return msgString(m) }
func (*UpdateUserProfileResponse) ProtoMessage()    {}

type CheckPhoneNumberRequest struct {
	PhoneNumber string `protobuf:"bytes,1,opt,name=phone_number,json=phoneNumber,proto3" json:"phone_number,omitempty"`
}

func (m *CheckPhoneNumberRequest) Reset()         { *m = CheckPhoneNumberRequest{} }
func (m *CheckPhoneNumberRequest) String() string { return msgString(m) }
func (*CheckPhoneNumberRequest) ProtoMessage()    {}

type CheckPhoneNumberResponse struct {
	IsUnique bool `protobuf:"varint,1,opt,name=is_unique,json=isUnique,proto3" json:"is_unique,omitempty"`
}

func (m *CheckPhoneNumberResponse) Reset()         { *m = CheckPhoneNumberResponse{} }
func (m *CheckPhoneNumberResponse) String() string { return msgString(m) }
func (*CheckPhoneNumberResponse) ProtoMessage()    {}
