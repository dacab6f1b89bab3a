package middleware

import (
	"net/http"
	"os"
	"strings"

	"SocialScheduler/services"
	"SocialScheduler/utils"
)

// noListingDir wraps http.Dir so opening a directory returns os.ErrNotExist,
// which prevents http.FileServer from enumerating contents.
type noListingDir struct {
	dir http.Dir
}

func (d noListingDir) Open(name string) (http.File, error) {
	f, err := d.dir.Open(name)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	if stat.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}

	return f, nil
}

// UploadsFileServer serves uploaded images with two independent access
// strategies:
//
//  1. Signed URL — HMAC "token" + "expires" query parameters, used when an
//     external platform server fetches the image.
//  2. JWT bearer token — any authenticated user of this service.
//
// Requests satisfying neither receive 403 Forbidden.
func UploadsFileServer(dir string, signingKey []byte, authService *services.AuthService) http.Handler {
	fs := http.StripPrefix("/uploads/", http.FileServer(noListingDir{http.Dir(dir)}))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Signatures cover the full public path, e.g. "/uploads/x.jpg".
		if !authenticateBySignedURL(r, signingKey) && !authenticateByJWT(r, authService) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		w.Header().Set("Cache-Control", "private, max-age=3600")
		fs.ServeHTTP(w, r)
	})
}

func authenticateBySignedURL(r *http.Request, signingKey []byte) bool {
	token := r.URL.Query().Get("token")
	expires := r.URL.Query().Get("expires")
	if token == "" || expires == "" {
		return false
	}
	return utils.ValidateSignedURL(r.URL.Path, token, expires, signingKey)
}

func authenticateByJWT(r *http.Request, authService *services.AuthService) bool {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return false
	}

	_, err := authService.ValidateToken(parts[1])
	return err == nil
}
