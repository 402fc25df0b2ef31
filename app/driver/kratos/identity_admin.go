package kratos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	kratosclient "github.com/ory/kratos-client-go"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

const (
	identitySchemaID = "default"
	addressViaEmail  = "email"
	addressCompleted = "completed"
)

// IdentityAdmin implements port.IdentityAdmin over the Kratos admin API.
type IdentityAdmin struct {
	client *Client
	logger *slog.Logger
}

// NewIdentityAdmin creates a new IdentityAdmin instance
func NewIdentityAdmin(client *Client, logger *slog.Logger) *IdentityAdmin {
	return &IdentityAdmin{
		client: client,
		logger: logger.With("component", "kratos_identity_admin"),
	}
}

// FindIdentityByEmail looks the address up by credentials identifier.
func (a *IdentityAdmin) FindIdentityByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	identities, resp, err := a.client.AdminAPI().IdentityAPI.
		ListIdentities(ctx).
		CredentialsIdentifier(email).
		Execute()
	if err != nil {
		return nil, unavailable("list identities", resp, err)
	}

	want := domain.NormalizeEmail(email)
	for i := range identities {
		identity := toDomainIdentity(&identities[i])
		if domain.NormalizeEmail(identity.Email) == want {
			return identity, nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

// CreateIdentity creates a password identity whose email is already
// verified, with tenant, name and role stored as public metadata.
func (a *IdentityAdmin) CreateIdentity(ctx context.Context, in domain.NewIdentity) (*domain.Identity, error) {
	body := kratosclient.NewCreateIdentityBody(identitySchemaID, map[string]interface{}{
		"email": in.Email,
		"name":  in.Name,
	})

	passwordConfig := kratosclient.NewIdentityWithCredentialsPasswordConfig()
	passwordConfig.SetPassword(in.Password)
	password := kratosclient.NewIdentityWithCredentialsPassword()
	password.SetConfig(*passwordConfig)
	credentials := kratosclient.NewIdentityWithCredentials()
	credentials.SetPassword(*password)
	body.SetCredentials(*credentials)

	body.SetVerifiableAddresses([]kratosclient.VerifiableIdentityAddress{
		*kratosclient.NewVerifiableIdentityAddress(addressCompleted, in.Email, true, addressViaEmail),
	})
	body.SetMetadataPublic(map[string]interface{}{
		"tenant_id": in.TenantID,
		"name":      in.Name,
		"role":      string(in.Role),
	})

	created, resp, err := a.client.AdminAPI().IdentityAPI.
		CreateIdentity(ctx).
		CreateIdentityBody(*body).
		Execute()
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case http.StatusConflict:
				return nil, domain.ErrEmailInUse
			case http.StatusBadRequest:
				return nil, rejectedIdentity(err)
			}
		}
		return nil, unavailable("create identity", resp, err)
	}

	a.logger.InfoContext(ctx, "identity created", "identity_id", created.Id, "tenant_id", in.TenantID)
	return toDomainIdentity(created), nil
}

// DeleteIdentity removes an identity. Deleting one that is already gone is
// not an error.
func (a *IdentityAdmin) DeleteIdentity(ctx context.Context, identityID string) error {
	resp, err := a.client.AdminAPI().IdentityAPI.DeleteIdentity(ctx, identityID).Execute()
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil
		}
		return unavailable("delete identity", resp, err)
	}
	return nil
}

func toDomainIdentity(identity *kratosclient.Identity) *domain.Identity {
	traits, _ := identity.Traits.(map[string]interface{})
	email, _ := traits["email"].(string)
	return &domain.Identity{
		ID:     identity.Id,
		Email:  email,
		Claims: traits,
	}
}

// rejectedIdentity turns a Kratos 400 on create, typically a password policy
// violation, into a validation error carrying Kratos' reason.
func rejectedIdentity(err error) error {
	message := "password does not meet the password policy"

	var apiErr *kratosclient.GenericOpenAPIError
	if errors.As(err, &apiErr) {
		var body struct {
			Error struct {
				Reason  string `json:"reason"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(apiErr.Body(), &body) == nil {
			switch {
			case body.Error.Reason != "":
				message = body.Error.Reason
			case body.Error.Message != "":
				message = body.Error.Message
			}
		}
	}
	return domain.NewValidationError("password", message)
}

func unavailable(operation string, resp *http.Response, err error) error {
	if resp != nil {
		return fmt.Errorf("%w: %s: kratos returned status %d", domain.ErrIdentityProviderUnavailable, operation, resp.StatusCode)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrIdentityProviderUnavailable, operation, err)
}
