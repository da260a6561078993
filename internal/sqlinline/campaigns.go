package sqlinline

const QInsertCampaign = `--sql ba9da99a-5267-4fe8-a594-a71777364c55
insert into campaigns(id, title, description, goal_amount, current_amount, creator_id, created_at, updated_at)
values ($1::uuid, $2::text, $3::text, $4::bigint, 0, $5::uuid, now(), now())
returning created_at, updated_at;
`

const QSelectCampaignByID = `--sql 66e7648b-dde0-4990-88c7-ac17ea285d69
select id, title, description, goal_amount, current_amount, creator_id, created_at, updated_at
from campaigns
where id = $1::uuid;
`

const QListCampaigns = `--sql 442d3aac-f816-4f14-9db9-82400045b00c
select id, title, description, goal_amount, current_amount, creator_id, created_at, updated_at
from campaigns
order by created_at asc, id asc;
`

const QUpdateCampaignMetadata = `--sql e07be228-9896-4514-a7b5-754765e16479
update campaigns
set title = $2::text,
    description = $3::text,
    updated_at = now()
where id = $1::uuid
returning id, title, description, goal_amount, current_amount, creator_id, created_at, updated_at;
`

const QDeleteUnfundedCampaign = `--sql 860b5b4b-4739-4955-b1a1-45748cb0bcb7
delete from campaigns
where id = $1::uuid
  and current_amount = 0
  and not exists (select 1 from contributions where campaign_id = $1::uuid);
`
