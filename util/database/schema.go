package database

import "context"

// Migrate bootstraps the catalog schema. Statements are idempotent so the
// server can run them on every start.
//
// Cascade rules carry the ownership model: deleting a book removes its join
// rows and reviews; deleting an author or genre removes join rows only.
const schema = `
CREATE TABLE IF NOT EXISTS books (
    id              bigserial PRIMARY KEY,
    title           text NOT NULL,
    description     text NOT NULL,
    publication_date date NOT NULL,
    price           numeric(10,2) NOT NULL,
    isbn            text NOT NULL,
    language        text NOT NULL,
    page_count      integer NOT NULL,
    publisher       text NOT NULL,
    format          text NOT NULL,
    rating_average  numeric(2,1),
    download_count  integer NOT NULL DEFAULT 0,
    read_count      integer NOT NULL DEFAULT 0,
    cover_image     text
);
CREATE UNIQUE INDEX IF NOT EXISTS books_isbn_key ON books (isbn);

CREATE TABLE IF NOT EXISTS authors (
    id            bigserial PRIMARY KEY,
    name          text NOT NULL,
    biography     text NOT NULL,
    date_of_birth date NOT NULL,
    nationality   text NOT NULL,
    website       text
);
CREATE INDEX IF NOT EXISTS authors_name_idx ON authors (lower(name));

CREATE TABLE IF NOT EXISTS genres (
    id   bigserial PRIMARY KEY,
    name text NOT NULL
);
CREATE INDEX IF NOT EXISTS genres_name_idx ON genres (lower(name));

CREATE TABLE IF NOT EXISTS book_authors (
    book_id   bigint NOT NULL REFERENCES books (id) ON DELETE CASCADE,
    author_id bigint NOT NULL REFERENCES authors (id) ON DELETE CASCADE,
    PRIMARY KEY (book_id, author_id)
);

CREATE TABLE IF NOT EXISTS book_genres (
    book_id  bigint NOT NULL REFERENCES books (id) ON DELETE CASCADE,
    genre_id bigint NOT NULL REFERENCES genres (id) ON DELETE CASCADE,
    PRIMARY KEY (book_id, genre_id)
);

CREATE TABLE IF NOT EXISTS reviews (
    id         bigserial PRIMARY KEY,
    book_id    bigint NOT NULL REFERENCES books (id) ON DELETE CASCADE,
    rating     integer NOT NULL,
    comment    text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS reviews_book_id_idx ON reviews (book_id);

CREATE TABLE IF NOT EXISTS users (
    id            bigserial PRIMARY KEY,
    username      text NOT NULL,
    email         text NOT NULL,
    password_hash text NOT NULL,
    role          text NOT NULL DEFAULT 'reader'
        CHECK (role IN ('reader', 'author', 'admin'))
);
CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (lower(email));
`

func (d *DB) Migrate(ctx context.Context) error {
	_, err := d.Pool.Exec(ctx, schema)
	return err
}
