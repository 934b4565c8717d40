package conn

// Kind discriminates connection implementations in the factory registry.
//
// Kinds are small string values so custom ones can be declared outside this
// package:
//
//	const KindSQLite conn.Kind = "sqlite"
type Kind string

// Built-in kinds. KindRedis is declared (it shows up in Kinds and carries
// metadata) but the Default registry has no constructor for it.
const (
	KindMySQL    Kind = "mysql"
	KindPostgres Kind = "postgres"
	KindMongo    Kind = "mongodb"
	KindRedis    Kind = "redis"
)

// kindMeta carries the display metadata the original enum would hold.
type kindMeta struct {
	display string
	driver  string
}

// drivers are the canonical Go driver modules each kind would use if this
// were real. Purely informational.
var kinds = map[Kind]kindMeta{
	KindMySQL:    {display: "MySQL", driver: "github.com/go-sql-driver/mysql"},
	KindPostgres: {display: "PostgreSQL", driver: "github.com/jackc/pgx/v5"},
	KindMongo:    {display: "MongoDB", driver: "go.mongodb.org/mongo-driver/v2"},
	KindRedis:    {display: "Redis", driver: "github.com/redis/go-redis/v9"},
}

// String implements fmt.Stringer.
func (k Kind) String() string { return string(k) }

// DisplayName returns the human-facing name for built-in kinds and the raw
// kind string otherwise.
func (k Kind) DisplayName() string {
	if m, ok := kinds[k]; ok {
		return m.display
	}
	return string(k)
}

// Driver returns the driver module path for built-in kinds, or "" for kinds
// this package does not know about.
func (k Kind) Driver() string {
	return kinds[k].driver
}

// Valid reports whether k is one of the built-in kinds.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Kinds returns the built-in kinds in unspecified order, including ones the
// Default registry cannot construct (see KindRedis).
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	return out
}
