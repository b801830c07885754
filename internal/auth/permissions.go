package auth

// Permissions required by the resource endpoints, one per operation.
const (
	PermGetActors    = "get:actors"
	PermPostActors   = "post:actors"
	PermPatchActors  = "patch:actors"
	PermDeleteActors = "delete:actors"

	PermGetMovies    = "get:movies"
	PermPostMovies   = "post:movies"
	PermPatchMovies  = "patch:movies"
	PermDeleteMovies = "delete:movies"
)

// AllPermissions lists every permission the API enforces.
var AllPermissions = []string{
	PermGetActors, PermPostActors, PermPatchActors, PermDeleteActors,
	PermGetMovies, PermPostMovies, PermPatchMovies, PermDeleteMovies,
}
