package user

import (
	"baka-api/internal/domain/user"
	"baka-api/internal/interface/api/rest/dto/file"
	"baka-api/internal/interface/api/rest/dto/link"
)

func ToResponseUser(uDomain *user.User, urls file.URLResolver) User {
	var u = User{
		ID:          int64(uDomain.ID),
		Username:    uDomain.Username,
		Name:        uDomain.Name,
		Email:       uDomain.Email,
		UploadLimit: uDomain.UploadLimitMB,
		InitialIP:   uDomain.InitialIP,
		Timestamp:   uDomain.Epoch(),
		Token:       uDomain.Token,
		Deleted:     uDomain.Deleted,
		Disabled:    uDomain.Disabled,
		AccountType: uDomain.AccountType,
		Links:       link.ToResponseLinks(uDomain.Links),
		Files:       file.ToResponseFiles(uDomain.Files, urls),
	}

	return u
}

func ToResponseUsers(usDomain user.Users, urls file.URLResolver) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(u, urls)
	}

	return us
}
