package identity

import (
	"context"
	"fmt"

	"quillworks/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ctypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// CognitoDirectory resolves accounts through the Cognito admin API. Both
// lookups use server-side filters, never a full user-pool scan.
type CognitoDirectory struct {
	client     *cognitoidentityprovider.Client
	userPoolID string
}

func NewCognitoDirectory(client *cognitoidentityprovider.Client, userPoolID string) *CognitoDirectory {
	return &CognitoDirectory{
		client:     client,
		userPoolID: userPoolID,
	}
}

func (d *CognitoDirectory) FindByEmail(ctx context.Context, email string) (*types.DirectoryUser, error) {
	return d.findByFilter(ctx, fmt.Sprintf("email = %q", email))
}

func (d *CognitoDirectory) FindByID(ctx context.Context, userID string) (*types.DirectoryUser, error) {
	// The bearer-token subject is the Cognito sub attribute, which is not
	// the pool username, so AdminGetUser cannot be used here.
	return d.findByFilter(ctx, fmt.Sprintf("sub = %q", userID))
}

func (d *CognitoDirectory) findByFilter(ctx context.Context, filter string) (*types.DirectoryUser, error) {
	out, err := d.client.ListUsers(ctx, &cognitoidentityprovider.ListUsersInput{
		UserPoolId: aws.String(d.userPoolID),
		Filter:     aws.String(filter),
		Limit:      aws.Int32(1),
	})
	if err != nil {
		return nil, types.WrapError(types.KindDependency, "identity provider lookup failed", err)
	}

	if len(out.Users) == 0 {
		return nil, types.ErrUserNotFound
	}

	return directoryUserFromCognito(out.Users[0]), nil
}

func directoryUserFromCognito(user ctypes.UserType) *types.DirectoryUser {
	out := &types.DirectoryUser{
		Enabled: user.Enabled,
	}

	if user.UserCreateDate != nil {
		out.CreatedAt = *user.UserCreateDate
	}

	for _, attr := range user.Attributes {
		switch aws.ToString(attr.Name) {
		case "sub":
			out.ID = aws.ToString(attr.Value)
		case "email":
			out.Email = aws.ToString(attr.Value)
		case "given_name":
			out.GivenName = aws.ToString(attr.Value)
		}
	}

	return out
}
