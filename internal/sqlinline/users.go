package sqlinline

const QInsertUser = `--sql 2ef0833a-39d2-48a8-857d-1c80c2354354
insert into users(id, name, email, password_hash, created_at)
values ($1::uuid, $2::text, $3::text, $4::text, now());
`

const QSelectUserByID = `--sql 959fcb81-4060-4b63-8a7b-cb5dadba7446
select id, name, email, password_hash, created_at
from users
where id = $1::uuid;
`

const QSelectUserByEmail = `--sql 1c5ded75-5a0c-4ad4-be6b-bd424968a775
select id, name, email, password_hash, created_at
from users
where lower(email) = lower($1::text);
`
